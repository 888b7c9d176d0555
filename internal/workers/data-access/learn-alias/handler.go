// internal/workers/data-access/learn-alias/handler.go
package learnalias

import (
	"context"
	"encoding/json"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "learn-alias"
)

type Handler struct {
	config       *Config
	store        *Store
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, store *Store, log logger.Logger) *Handler {
	taskLogger := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewAliasValidationFailedError(err.Error()))
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
	if err := validateInput(input); err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = SourceAI
	}
	terms := input.Terms
	if h.config.MaxTerms > 0 && len(terms) > h.config.MaxTerms {
		terms = terms[:h.config.MaxTerms]
	}

	key, stored, err := h.store.SaveFrom(ctx, input.ShopID, input.Alias, terms, source)
	if err != nil {
		return nil, err
	}

	h.logger.Info("alias learned", map[string]interface{}{
		"shopId": input.ShopID,
		"alias":  key,
		"terms":  stored,
		"source": source,
	})

	return &Output{
		ShopID: input.ShopID,
		Alias:  key,
		Terms:  stored,
		Stored: true,
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
