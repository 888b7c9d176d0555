// internal/workers/data-access/record-turn/handler.go
package recordturn

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-turn"
)

type Handler struct {
	config       *Config
	recorder     *Recorder
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, recorder *Recorder, log logger.Logger) *Handler {
	taskLogger := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		recorder:     recorder,
		logger:       taskLogger,
		errorHandler: errors.NewErrorHandler(taskLogger),
		now:          time.Now,
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

	id := input.TurnID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewInvalidInputError("turnId must be a uuid")
	}

	rec := models.TurnRecord{
		ID:             id,
		ShopID:         input.ShopID,
		ConversationID: input.ConversationID,
		Text:           input.Text,
		Intent:         input.Intent,
		Action:         input.Action,
		AIReason:       input.AIReason,
		RecommendedIDs: input.Recommended,
		CreatedAt:      h.now().UTC(),
	}
	if err := h.recorder.Record(ctx, rec); err != nil {
		return nil, err
	}

	return &Output{TurnID: id, Recorded: true}, nil
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
