// internal/workers/sales/rank-candidates/handler.go
package rankcandidates

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"
	ea "sales-workers/internal/workers/sales/extract-attributes"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-candidates"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "CANDIDATE_RANKING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	start := time.Now()

	catalog := models.SanitizeCatalog(input.Catalog)
	index := input.Index
	if index.PerProduct == nil {
		index = ea.BuildIndex(catalog, 3)
	}

	result := Rank(Params{
		Text:          input.Text,
		Intent:        input.Intent,
		Catalog:       catalog,
		Category:      input.Category,
		Query:         input.Query,
		Index:         index,
		Terms:         input.Terms,
		Budget:        input.Budget,
		Limit:         input.Plan.MaxRecommendations(),
		KeywordCap:    h.config.KeywordCandidateCap,
		AboveBudget:   h.config.AboveBudgetFallbackCount,
		MostExpensive: input.MostExpensive,
		Cheapest:      input.Cheapest,
	})

	duration := time.Since(start).Milliseconds()
	h.logger.Info("candidates ranked", map[string]interface{}{
		"catalogSize":       len(catalog),
		"candidateCount":    result.CandidateCount,
		"recommended":       len(result.Products),
		"priceRangeNoMatch": result.PriceRangeNoMatch,
		"durationMs":        duration,
	})
	if duration > 500 {
		h.logger.Warn("ranking exceeded 500ms", map[string]interface{}{
			"durationMs": duration,
		})
	}

	return &Output{Result: result}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}
