// internal/workers/ai-conversation/request-ai-clarification/handler.go
package requestaiclarification

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"
	"strings"

	"sales-workers/internal/common/errors"
	httpclient "sales-workers/internal/common/http"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "request-ai-clarification"

	clarifyPath = "/api/ai/clarify"
)

type Handler struct {
	config       *Config
	client       *httpclient.Client
	aliases      AliasSaver
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

// NewHandler accepts a nil alias saver; learned mappings are then only
// returned.
func NewHandler(config *Config, aliases AliasSaver, log logger.Logger) *Handler {
	taskLogger := log.WithFields(map[string]interface{}{"taskType": TaskType})
	client := httpclient.NewClient(0, config.Retry)
	if config.APIKey != "" {
		client.WithHeader("Authorization", "Bearer "+config.APIKey)
	}
	return &Handler{
		config:       config,
		client:       client,
		aliases:      aliases,
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

	request := models.NewAIRequest(input.ShopID, input.ConversationID, input.AiTrigger)
	if request == nil {
		return &Output{Skipped: true}, nil
	}

	var resp clarifyResponse
	url := strings.TrimRight(h.config.BaseURL, "/") + clarifyPath
	if err := h.client.PostJSON(ctx, url, request, &resp); err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			return nil, errors.NewAIClarificationTimeoutError().
				WithMetadata("shopId", input.ShopID)
		}
		return nil, errors.NewAIClarificationFailedError(err).
			WithMetadata("shopId", input.ShopID)
	}

	learned := h.learn(ctx, input.ShopID, resp.Aliases)

	h.logger.Info("clarification received", map[string]interface{}{
		"shopId":  input.ShopID,
		"reason":  request.Reason,
		"learned": len(learned),
	})

	return &Output{
		Clarification:  strings.TrimSpace(resp.Clarification),
		LearnedAliases: learned,
	}, nil
}

// learn stores mappings in key order; a failing mapping is logged and left
// out of the result.
func (h *Handler) learn(ctx context.Context, shopID string, aliases map[string][]string) map[string][]string {
	if len(aliases) == 0 {
		return nil
	}

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if h.config.MaxAliases > 0 && len(keys) > h.config.MaxAliases {
		keys = keys[:h.config.MaxAliases]
	}

	learned := make(map[string][]string, len(keys))
	for _, alias := range keys {
		terms := aliases[alias]
		if strings.TrimSpace(alias) == "" || len(terms) == 0 {
			continue
		}
		if h.aliases != nil {
			if err := h.aliases.Save(ctx, shopID, alias, terms); err != nil {
				h.logger.Warn("failed to store learned alias", map[string]interface{}{
					"shopId": shopID,
					"alias":  alias,
					"error":  err.Error(),
				})
				continue
			}
		}
		learned[alias] = terms
	}
	return learned
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
