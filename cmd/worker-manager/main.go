// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-workers/internal/api"
	"sales-workers/internal/common/aws"
	"sales-workers/internal/common/camunda"
	"sales-workers/internal/common/config"
	"sales-workers/internal/common/database"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/common/observability"
	"sales-workers/internal/common/validation"
	"sales-workers/internal/models"
	"sales-workers/pkg/registry"

	// AI workers
	rac "sales-workers/internal/workers/ai-conversation/request-ai-clarification"

	// Data access workers
	la "sales-workers/internal/workers/data-access/learn-alias"
	lc "sales-workers/internal/workers/data-access/load-catalog"
	rt "sales-workers/internal/workers/data-access/record-turn"

	// Infrastructure workers
	rp "sales-workers/internal/workers/infrastructure/resolve-plan"

	// Sales pipeline workers
	ci "sales-workers/internal/workers/sales/classify-intent"
	cr "sales-workers/internal/workers/sales/compose-reply"
	dat "sales-workers/internal/workers/sales/decide-ai-trigger"
	dsp "sales-workers/internal/workers/sales/decide-sales-policy"
	dpc "sales-workers/internal/workers/sales/detect-product-code"
	ea "sales-workers/internal/workers/sales/extract-attributes"
	pb "sales-workers/internal/workers/sales/parse-budget"
	pt "sales-workers/internal/workers/sales/process-turn"
	rc "sales-workers/internal/workers/sales/rank-candidates"
	ra "sales-workers/internal/workers/sales/resolve-aliases"
	rcat "sales-workers/internal/workers/sales/resolve-category"
)

// retryWithBackoff retries operation with doubling delays.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying", map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{"service": cfg.App.Name})

	if err := run(cfg, log); err != nil {
		log.Error("worker manager stopped with error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting worker manager", map[string]interface{}{"version": cfg.App.Version})

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	// --- Backends ---
	var pg *database.PostgresClient
	err = retryWithBackoff(ctx, func() error {
		var err error
		if pg, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		return err
	}
	defer pg.Close()
	log.Info("PostgreSQL connected", nil)

	if cfg.Database.Postgres.MigrateOnStart {
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		log.Info("Sales schema ensured", nil)
	}

	var redis *database.RedisClient
	err = retryWithBackoff(ctx, func() error {
		var err error
		if redis, err = database.NewRedis(cfg.Database.Redis); err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		return err
	}
	defer redis.Close()
	log.Info("Redis connected", nil)

	var esClient *database.ElasticsearchClient
	if cfg.Catalog.Source == config.CatalogSourceElasticsearch {
		err = retryWithBackoff(ctx, func() error {
			var err error
			if esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			return err
		}
		log.Info("Elasticsearch connected", nil)

		if cfg.Database.Postgres.MigrateOnStart {
			if err := esClient.EnsureCatalogIndex(ctx, cfg.Catalog.Index); err != nil {
				return err
			}
		}
	}

	zeebe, err := camunda.Connect(ctx, camunda.ConfigFrom(cfg.Camunda), log)
	if err != nil {
		return err
	}
	defer zeebe.Close()
	log.Info("Zeebe connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- Collaborators ---
	source, err := catalogSource(cfg, pg, esClient)
	if err != nil {
		return err
	}
	catalogs := lc.NewProvider(source, time.Duration(cfg.Catalog.CacheTTL)*time.Second, log)

	aliases := la.NewStore(pg.DB, redis.Client, log)

	planHandler := rp.NewHandler(&rp.Config{
		Timeout:     workerTimeout(cfg, rp.TaskType, 5*time.Second),
		CacheTTL:    time.Duration(cfg.Sales.PlanCacheTTL) * time.Second,
		DefaultPlan: models.Plan(cfg.Sales.DefaultPlan),
	}, pg.DB, redis.Client, log)

	recorder := rt.NewRecorder(pg.DB)

	deps := pt.ServiceDependencies{
		Catalog:  catalogs,
		Aliases:  aliases,
		Plans:    planHandler.Resolver(),
		Recorder: recorder,
	}
	if cfg.AI.SNSTopicARN != "" {
		publisher, err := aws.NewAIRequestPublisher(ctx, cfg.AI.Region, cfg.AI.SNSTopicARN)
		if err != nil {
			return fmt.Errorf("sns publisher: %w", err)
		}
		deps.Publisher = publisher
	} else {
		log.Info("ai.sns_topic_arn not set, AI requests are not published", nil)
	}

	turnHandler := pt.NewHandler(turnConfig(cfg), log, deps)

	// --- Workers ---
	manager := camunda.NewManager(zeebe.Zeebe(), obs, log)
	if reg, err := registry.LoadRegistry(cfg.Registry.Path); err != nil {
		log.Warn("activity registry not loaded, job inputs are not schema-checked", map[string]interface{}{
			"path":  cfg.Registry.Path,
			"error": err.Error(),
		})
	} else {
		validator, err := validation.NewSchemaValidator(reg)
		if err != nil {
			return fmt.Errorf("activity registry: %w", err)
		}
		manager.WithValidator(validator)
	}

	if err := registerWorkers(cfg, manager, log, workerSet{
		turn:     turnHandler,
		plan:     planHandler,
		catalogs: catalogs,
		aliases:  aliases,
		recorder: recorder,
	}); err != nil {
		return err
	}
	log.Info("workers registered", map[string]interface{}{"count": len(manager.TaskTypes())})

	// --- HTTP ---
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: api.NewRouter(api.Dependencies{
			Turns: turnHandler.Service(),
			Health: map[string]database.Pinger{
				"postgres":      pg,
				"redis":         redis,
				"elasticsearch": pinger(esClient),
				"zeebe":         zeebe,
			},
			Observability:  obs,
			Logger:         log,
			RequestTimeout: config.GetDuration(cfg.HTTP.RequestTimeout),
			Version:        cfg.App.Version,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping workers", nil)
	case err := <-serverErr:
		log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("worker manager stopped gracefully", nil)
	return nil
}

type workerSet struct {
	turn     *pt.Handler
	plan     *rp.Handler
	catalogs *lc.Provider
	aliases  *la.Store
	recorder *rt.Recorder
}

func registerWorkers(cfg *config.Config, m *camunda.Manager, log logger.Logger, ws workerSet) error {
	register := func(taskType string, h camunda.JobHandler) {
		m.Register(taskType, config.GetWorkerConfig(cfg, taskType), h)
	}

	// --- Turn and infrastructure ---
	register(pt.TaskType, ws.turn)
	register(rp.TaskType, ws.plan)

	// --- Data access ---
	register(lc.TaskType, lc.NewHandler(&lc.Config{
		Timeout:     workerTimeout(cfg, lc.TaskType, config.GetDuration(cfg.Catalog.Timeout)),
		CacheTTL:    time.Duration(cfg.Catalog.CacheTTL) * time.Second,
		Table:       cfg.Catalog.Table,
		Index:       cfg.Catalog.Index,
		MaxProducts: lc.LoadConfig().MaxProducts,
	}, ws.catalogs, log))

	laCfg := la.LoadConfig()
	laCfg.Timeout = workerTimeout(cfg, la.TaskType, laCfg.Timeout)
	register(la.TaskType, la.NewHandler(laCfg, ws.aliases, log))

	register(rt.TaskType, rt.NewHandler(&rt.Config{
		Timeout: workerTimeout(cfg, rt.TaskType, 5*time.Second),
	}, ws.recorder, log))

	// --- AI ---
	if cfg.AI.BaseURL != "" {
		racCfg := rac.LoadConfig()
		racCfg.Timeout = config.GetDuration(cfg.AI.Timeout)
		racCfg.BaseURL = cfg.AI.BaseURL
		racCfg.APIKey = cfg.AI.APIKey
		racCfg.Retry.MaxRetries = cfg.AI.MaxRetries
		register(rac.TaskType, rac.NewHandler(racCfg, ws.aliases, log))
	} else {
		log.Info("ai.base_url not set, clarification worker disabled", nil)
	}

	// --- Sales pipeline stages ---
	pbCfg := pb.LoadConfig()
	pbCfg.Timeout = workerTimeout(cfg, pb.TaskType, pbCfg.Timeout)
	register(pb.TaskType, pb.NewHandler(pbCfg, log))

	ciCfg := ci.LoadConfig()
	ciCfg.Timeout = workerTimeout(cfg, ci.TaskType, ciCfg.Timeout)
	register(ci.TaskType, ci.NewHandler(ciCfg, log))

	rcatCfg := rcat.LoadConfig()
	rcatCfg.Timeout = workerTimeout(cfg, rcat.TaskType, rcatCfg.Timeout)
	register(rcat.TaskType, rcat.NewHandler(rcatCfg, log))

	eaCfg := ea.LoadConfig()
	eaCfg.Timeout = workerTimeout(cfg, ea.TaskType, eaCfg.Timeout)
	register(ea.TaskType, ea.NewHandler(eaCfg, log))

	dpcCfg := dpc.LoadConfig()
	dpcCfg.Timeout = workerTimeout(cfg, dpc.TaskType, dpcCfg.Timeout)
	register(dpc.TaskType, dpc.NewHandler(dpcCfg, log))

	raCfg := ra.LoadConfig()
	raCfg.Timeout = workerTimeout(cfg, ra.TaskType, raCfg.Timeout)
	aliasHandler, err := ra.NewHandler(raCfg, log)
	if err != nil {
		return fmt.Errorf("resolve-aliases: %w", err)
	}
	register(ra.TaskType, aliasHandler)

	rcCfg := rc.LoadConfig()
	rcCfg.Timeout = workerTimeout(cfg, rc.TaskType, rcCfg.Timeout)
	rcCfg.KeywordCandidateCap = cfg.Sales.KeywordCandidateCap
	rcCfg.AboveBudgetFallbackCount = cfg.Sales.AboveBudgetFallbackCount
	register(rc.TaskType, rc.NewHandler(rcCfg, log))

	datCfg := dat.LoadConfig()
	datCfg.Timeout = workerTimeout(cfg, dat.TaskType, datCfg.Timeout)
	datCfg.HighBudgetThreshold = cfg.Sales.HighBudgetThreshold
	datCfg.LowBudgetThreshold = cfg.Sales.LowBudgetThreshold
	register(dat.TaskType, dat.NewHandler(datCfg, log))

	dspCfg := dsp.LoadConfig()
	dspCfg.Timeout = workerTimeout(cfg, dsp.TaskType, dspCfg.Timeout)
	register(dsp.TaskType, dsp.NewHandler(dspCfg, log))

	crCfg := cr.LoadConfig()
	crCfg.Timeout = workerTimeout(cfg, cr.TaskType, crCfg.Timeout)
	crCfg.SnippetLength = cfg.Sales.SnippetLength
	register(cr.TaskType, cr.NewHandler(crCfg, log))

	return nil
}

func workerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if wc, ok := cfg.Workers[taskType]; ok && wc.Timeout > 0 {
		return config.GetDuration(wc.Timeout)
	}
	return fallback
}

func turnConfig(cfg *config.Config) *pt.Config {
	c := pt.LoadConfig()
	c.Timeout = workerTimeout(cfg, pt.TaskType, c.Timeout)
	c.CatalogTimeout = config.GetDuration(cfg.Catalog.Timeout)
	c.HighBudgetThreshold = cfg.Sales.HighBudgetThreshold
	c.LowBudgetThreshold = cfg.Sales.LowBudgetThreshold
	c.KeywordCandidateCap = cfg.Sales.KeywordCandidateCap
	c.AboveBudgetFallbackCount = cfg.Sales.AboveBudgetFallbackCount
	c.SnippetLength = cfg.Sales.SnippetLength
	c.PlanLimits = models.PlanLimitsOverride(cfg.Sales.PlanLimits)
	c.DefaultPlan = models.Plan(cfg.Sales.DefaultPlan)
	c.SlowTurnThreshold = config.GetDuration(cfg.Sales.SlowTurnThreshold)
	return c
}

func catalogSource(cfg *config.Config, pg *database.PostgresClient, es *database.ElasticsearchClient) (lc.Source, error) {
	maxProducts := lc.LoadConfig().MaxProducts
	if cfg.Catalog.Source == config.CatalogSourceElasticsearch {
		return lc.NewElasticsearchSource(es.Client, cfg.Catalog.Index, maxProducts), nil
	}
	return lc.NewPostgresSource(pg.DB, cfg.Catalog.Table, maxProducts)
}

// pinger keeps a nil client out of the readiness map as a true nil.
func pinger(es *database.ElasticsearchClient) database.Pinger {
	if es == nil {
		return nil
	}
	return es
}
