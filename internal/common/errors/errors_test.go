package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// BPMN conversion
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name          string
		err           *StandardError
		expectCode    string
		expectRetries int
	}{
		{
			name:          "catalog timeout maps to catalog load failed",
			err:           NewCatalogTimeoutError("shop-1"),
			expectCode:    "CATALOG_LOAD_FAILED",
			expectRetries: 2,
		},
		{
			name:          "index not found is not retried",
			err:           NewIndexNotFoundError("products"),
			expectCode:    "CATALOG_LOAD_FAILED",
			expectRetries: 0,
		},
		{
			name:          "unmapped code is thrown unchanged",
			err:           NewTurnLogFailedError(fmt.Errorf("insert failed")),
			expectCode:    "TURN_LOG_FAILED",
			expectRetries: 3,
		},
		{
			name:          "ai clarification timeout retries once",
			err:           NewAIClarificationTimeoutError(),
			expectCode:    "AI_CLARIFICATION_TIMEOUT",
			expectRetries: 1,
		},
		{
			name:          "invalid turn request",
			err:           NewInvalidTurnRequestError("text is required"),
			expectCode:    "INVALID_TURN_REQUEST",
			expectRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectCode, bpmn.Code)
			assert.Equal(t, tt.expectRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	bpmn := ConvertToBPMNError(NewPlanLookupFailedError("shop-9", fmt.Errorf("conn reset")))

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "shop-9", vars["shopId"])
	assert.Equal(t, "PLAN_LOOKUP_FAILED", vars["errorCode"])
	assert.Equal(t, "conn reset", vars["errorDetails"])
	assert.Equal(t, true, vars["retryable"])
}

// ==========================
// Helpers
// ==========================

func TestAsStandardError(t *testing.T) {
	original := NewAliasStoreFailedError("save", fmt.Errorf("redis down"))
	wrapped := fmt.Errorf("learn alias: %w", original)

	assert.Same(t, original, AsStandardError(wrapped))

	unknown := AsStandardError(stderrors.New("boom"))
	require.NotNil(t, unknown)
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), unknown.Code)
	assert.Equal(t, "boom", unknown.Details)
	assert.False(t, unknown.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeCatalogLoadFailed:         "CATALOG",
		ErrCodeSearchQueryFailed:         "CATALOG",
		ErrCodeAliasStoreFailed:          "ALIAS",
		ErrCodeAIClarificationFailed:     "AI",
		ErrCodeTurnLogFailed:             "DATABASE",
		ErrCodeQueryExecutionFailed:      "DATABASE",
		ErrCodePlanLookupFailed:          "PLAN",
		ErrCodeInvalidInput:              "VALIDATION",
	}

	for code, expected := range tests {
		assert.Equal(t, expected, GetErrorCategory(code), string(code))
	}
	assert.Equal(t, "OTHER", GetErrorCategory("EXTERNAL_SERVICE_ERROR"))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeCatalogLoadFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeAIClarificationTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidTurnRequest))
	assert.False(t, IsRetryableErrorCode(ErrCodeAliasValidationFailed))
}

func TestStandardError_WithMetadata(t *testing.T) {
	err := NewCatalogNotFoundError("shop-3").WithMetadata("source", "postgres")

	assert.Equal(t, "postgres", err.Metadata["source"])
	assert.Contains(t, err.Error(), "CATALOG_NOT_FOUND")
}
