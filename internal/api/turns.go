// internal/api/turns.go
package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/common/observability"
	"sales-workers/internal/models"
	processturn "sales-workers/internal/workers/sales/process-turn"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 4 << 20

// TurnRequest is the body of POST /v1/turns.
type TurnRequest struct {
	ShopID              string                      `json:"shopId" validate:"required_without=Catalog,max=64"`
	ConversationID      string                      `json:"conversationId,omitempty" validate:"max=128"`
	Text                string                      `json:"text" validate:"max=2000"`
	CurrentIntent       models.Intent               `json:"currentIntent,omitempty"`
	Plan                models.Plan                 `json:"plan,omitempty" validate:"max=32"`
	PreviousRecommended []models.Product            `json:"previousRecommended,omitempty" validate:"max=50"`
	Context             *models.ConversationContext `json:"context,omitempty"`
	Catalog             []models.Product            `json:"catalog,omitempty" validate:"max=5000"`
}

func (r TurnRequest) toInput() *processturn.Input {
	return &processturn.Input{
		ShopID:              strings.TrimSpace(r.ShopID),
		ConversationID:      r.ConversationID,
		Text:                r.Text,
		CurrentIntent:       r.CurrentIntent,
		Plan:                r.Plan,
		PreviousRecommended: r.PreviousRecommended,
		Context:             r.Context,
		Catalog:             r.Catalog,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type turnHandler struct {
	service  TurnService
	validate *validator.Validate
	obs      *observability.Observability
	logger   logger.Logger
}

// Create handles POST /v1/turns.
func (h *turnHandler) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TurnRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidTurnRequestError("malformed JSON body: "+err.Error()))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidTurnRequestError(describeValidation(err)))
		return
	}

	ctx, span := h.obs.StartSpan(r.Context(), "POST /v1/turns", map[string]string{"shopId": req.ShopID})
	defer span.End()

	output, err := h.service.Execute(ctx, req.toInput())
	h.obs.RecordStage(ctx, "http_turn", time.Since(start))
	if err != nil {
		stdErr := errors.AsStandardError(err)
		status := statusFor(stdErr.Code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("turn failed", map[string]interface{}{
				"shopId":    req.ShopID,
				"errorCode": stdErr.Code,
				"error":     stdErr.Details,
			})
		}
		writeError(w, status, stdErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func statusFor(code errors.ErrorCode) int {
	switch errors.GetErrorCategory(code) {
	case "VALIDATION":
		return http.StatusBadRequest
	case "CATALOG":
		if code == errors.ErrCodeCatalogTimeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, stdErr *errors.StandardError) {
	writeJSON(w, status, errorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
