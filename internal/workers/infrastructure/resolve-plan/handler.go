// internal/workers/infrastructure/resolve-plan/handler.go
package resolveplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "resolve-plan"
)

type Handler struct {
	config       *Config
	resolver     *Resolver
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	taskLogger := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     NewResolver(config, db, redisClient, taskLogger),
		logger:       taskLogger,
		errorHandler: errors.NewErrorHandler(taskLogger),
	}
}

// Resolver exposes the lookup so process-turn can share it.
func (h *Handler) Resolver() *Resolver {
	return h.resolver
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewInvalidInputError(err.Error()))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.ShopID) == "" {
		return nil, errors.NewInvalidInputError("shopId is required")
	}

	plan, source, err := h.resolver.resolve(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("plan resolved", map[string]interface{}{
		"shopId": input.ShopID,
		"plan":   plan,
		"source": source,
	})

	return &Output{
		Plan:               plan,
		MaxRecommendations: plan.MaxRecommendations(),
		Source:             source,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
