// internal/workers/data-access/load-catalog/handler.go
package loadcatalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "load-catalog"
)

type Handler struct {
	config       *Config
	provider     *Provider
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, provider *Provider, log logger.Logger) *Handler {
	taskLogger := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		provider:     provider,
		logger:       taskLogger,
		errorHandler: errors.NewErrorHandler(taskLogger),
	}
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

	products, cached, err := h.provider.load(ctx, input.ShopID, input.Refresh)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewCatalogTimeoutError(input.ShopID)
		}
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			return nil, stdErr.WithMetadata("shopId", input.ShopID)
		}
		return nil, errors.NewCatalogLoadFailedError(input.ShopID, err)
	}

	return &Output{
		ShopID:   input.ShopID,
		Products: products,
		Count:    len(products),
		Source:   h.provider.source.Name(),
		Cached:   cached,
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
