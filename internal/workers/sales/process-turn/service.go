// internal/workers/sales/process-turn/service.go
package processturn

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/common/metrics"
	"sales-workers/internal/models"

	"github.com/google/uuid"
)

// Service hosts ProcessTurn: it loads what a turn needs before the call and
// records what happened after it.
type Service struct {
	config *Config
	logger logger.Logger
	deps   ServiceDependencies
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: config,
		logger: log,
		deps:   deps,
		now:    time.Now,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := s.now()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	plan := s.resolvePlan(ctx, input)

	catalog, err := s.loadCatalog(ctx, input)
	if err != nil {
		return nil, err
	}

	req := Request{
		Text:                input.Text,
		CurrentIntent:       input.CurrentIntent,
		Catalog:             catalog,
		Plan:                plan,
		PreviousRecommended: input.PreviousRecommended,
		Context:             input.Context,
		ShopAliases:         s.loadAliases(ctx, input.ShopID),
		Options:             s.config.Options(),
	}

	result := ProcessTurn(req)

	output := &Output{
		TurnID:         uuid.NewString(),
		ShopID:         input.ShopID,
		ConversationID: input.ConversationID,
		TurnResult:     result,
	}

	s.observe(result)
	s.record(ctx, output, input.Text)
	s.publish(ctx, output)

	for _, ev := range result.Trace {
		s.logger.Debug(ev.Stage+": "+ev.Message, ev.Fields)
	}

	duration := s.now().Sub(start)
	fields := map[string]interface{}{
		"turnId":      output.TurnID,
		"shopId":      input.ShopID,
		"intent":      result.Intent,
		"action":      result.SalesDecision.PrimaryAction,
		"recommended": len(result.Recommended),
		"durationMs":  duration.Milliseconds(),
	}
	if result.AiTrigger != nil {
		fields["aiReason"] = result.AiTrigger.Reason
	}
	s.logger.Info("turn processed", fields)
	if s.config.SlowTurnThreshold > 0 && duration > s.config.SlowTurnThreshold {
		s.logger.Warn("turn exceeded threshold", map[string]interface{}{
			"turnId":     output.TurnID,
			"durationMs": duration.Milliseconds(),
		})
	}

	return output, nil
}

func validateInput(input *Input) error {
	if input == nil {
		return errors.NewInvalidTurnRequestError("missing input")
	}
	if strings.TrimSpace(input.ShopID) == "" && len(input.Catalog) == 0 {
		return errors.NewInvalidTurnRequestError("shopId is required when no catalog is given")
	}
	if input.CurrentIntent != "" && !input.CurrentIntent.Valid() {
		return errors.NewInvalidTurnRequestError("unknown currentIntent " + string(input.CurrentIntent))
	}
	return nil
}

// resolvePlan never fails the turn; unknown plans get the default limit.
func (s *Service) resolvePlan(ctx context.Context, input *Input) models.Plan {
	if input.Plan != "" {
		return input.Plan
	}
	if s.deps.Plans == nil || input.ShopID == "" {
		return s.config.DefaultPlan
	}

	plan, err := s.deps.Plans.ResolvePlan(ctx, input.ShopID)
	if err != nil {
		stdErr := errors.NewPlanLookupFailedError(input.ShopID, err)
		s.logger.Warn("plan lookup failed, using default plan", map[string]interface{}{
			"shopId":    input.ShopID,
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
		return s.config.DefaultPlan
	}
	return plan
}

func (s *Service) loadCatalog(ctx context.Context, input *Input) ([]models.Product, error) {
	if len(input.Catalog) > 0 || s.deps.Catalog == nil {
		return input.Catalog, nil
	}

	catalogCtx := ctx
	if s.config.CatalogTimeout > 0 {
		var cancel context.CancelFunc
		catalogCtx, cancel = context.WithTimeout(ctx, s.config.CatalogTimeout)
		defer cancel()
	}

	catalog, err := s.deps.Catalog.LoadCatalog(catalogCtx, input.ShopID)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewCatalogTimeoutError(input.ShopID)
		}
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			return nil, stdErr
		}
		return nil, errors.NewCatalogLoadFailedError(input.ShopID, err)
	}
	return catalog, nil
}

// loadAliases degrades to the static table when the store is unavailable.
func (s *Service) loadAliases(ctx context.Context, shopID string) map[string][]string {
	if s.deps.Aliases == nil || shopID == "" {
		return nil
	}
	aliases, err := s.deps.Aliases.Load(ctx, shopID)
	if err != nil {
		s.logger.Warn("alias store unavailable", map[string]interface{}{
			"shopId":    shopID,
			"errorCode": errors.ErrCodeAliasStoreFailed,
			"error":     err.Error(),
		})
		return nil
	}
	return aliases
}

func (s *Service) observe(result models.TurnResult) {
	metrics.SalesTurnsTotal.WithLabelValues(string(result.Intent)).Inc()
	metrics.SalesActionsTotal.WithLabelValues(string(result.SalesDecision.PrimaryAction)).Inc()
	metrics.SalesRecommendedProducts.Observe(float64(len(result.Recommended)))
	if result.AiTrigger != nil && result.AiTrigger.NeedsAiHelp {
		metrics.SalesAITriggersTotal.WithLabelValues(string(result.AiTrigger.Reason)).Inc()
	}
}

func (s *Service) record(ctx context.Context, output *Output, text string) {
	if s.deps.Recorder == nil {
		return
	}
	rec := models.NewTurnRecord(output.TurnID, output.ShopID, output.ConversationID, text, output.TurnResult, s.now())
	if err := s.deps.Recorder.Record(ctx, rec); err != nil {
		stdErr := errors.NewTurnLogFailedError(err)
		s.logger.Error("failed to record turn", map[string]interface{}{
			"turnId":    output.TurnID,
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
	}
}

func (s *Service) publish(ctx context.Context, output *Output) {
	if s.deps.Publisher == nil {
		return
	}
	req := models.NewAIRequest(output.ShopID, output.ConversationID, output.AiTrigger)
	if req == nil {
		return
	}
	if err := s.deps.Publisher.Publish(ctx, *req); err != nil {
		stdErr := errors.NewAIRequestPublishFailedError(err)
		s.logger.Error("failed to publish ai request", map[string]interface{}{
			"turnId":    output.TurnID,
			"reason":    req.Reason,
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
	}
}
