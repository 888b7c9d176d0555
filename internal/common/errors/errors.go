// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Sales pipeline infrastructure errors. Business conditions of a turn are
// never errors; they are typed fields of the turn result.
const (
	ErrCodeInvalidTurnRequest ErrorCode = "INVALID_TURN_REQUEST"
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"

	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogTimeout    ErrorCode = "CATALOG_TIMEOUT"
	ErrCodeCatalogEmpty      ErrorCode = "CATALOG_NOT_FOUND"

	ErrCodeAliasStoreFailed      ErrorCode = "ALIAS_STORE_FAILED"
	ErrCodeAliasValidationFailed ErrorCode = "ALIAS_VALIDATION_FAILED"

	ErrCodePlanLookupFailed ErrorCode = "PLAN_LOOKUP_FAILED"

	ErrCodeTurnLogFailed ErrorCode = "TURN_LOG_FAILED"

	ErrCodeAIRequestPublishFailed ErrorCode = "AI_REQUEST_PUBLISH_FAILED"
	ErrCodeAIClarificationFailed  ErrorCode = "AI_CLARIFICATION_FAILED"
	ErrCodeAIClarificationTimeout ErrorCode = "AI_CLARIFICATION_TIMEOUT"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed          ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidTurnRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidTurnRequest, "Invalid turn request", details, false)
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false)
}

// NewCatalogLoadFailedError is retryable; the turn cannot run without a catalog.
func NewCatalogLoadFailedError(shopID string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Failed to load catalog", err.Error(), true).
		WithMetadata("shopId", shopID)
}

func NewCatalogTimeoutError(shopID string) *StandardError {
	return newError(ErrCodeCatalogTimeout, "Catalog load timed out", "", true).
		WithMetadata("shopId", shopID)
}

func NewCatalogNotFoundError(shopID string) *StandardError {
	return newError(ErrCodeCatalogEmpty, "No catalog for shop", shopID, false)
}

func NewAliasStoreFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeAliasStoreFailed, fmt.Sprintf("Alias store %s failed", operation), err.Error(), true)
}

func NewAliasValidationFailedError(details string) *StandardError {
	return newError(ErrCodeAliasValidationFailed, "Invalid alias mapping", details, false)
}

func NewPlanLookupFailedError(shopID string, err error) *StandardError {
	return newError(ErrCodePlanLookupFailed, "Failed to resolve plan", err.Error(), true).
		WithMetadata("shopId", shopID)
}

func NewTurnLogFailedError(err error) *StandardError {
	return newError(ErrCodeTurnLogFailed, "Failed to record turn", err.Error(), true)
}

func NewAIRequestPublishFailedError(err error) *StandardError {
	return newError(ErrCodeAIRequestPublishFailed, "Failed to publish AI request", err.Error(), true)
}

func NewAIClarificationFailedError(err error) *StandardError {
	return newError(ErrCodeAIClarificationFailed, "AI clarification failed", err.Error(), true)
}

func NewAIClarificationTimeoutError() *StandardError {
	return newError(ErrCodeAIClarificationTimeout, "AI clarification timed out", "", true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Failed to connect to database", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, fmt.Sprintf("Query '%s' failed", queryType), err.Error(), true)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Failed to connect to Elasticsearch", err.Error(), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, fmt.Sprintf("Search on '%s' failed", index), err.Error(), true)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Index not found", indexName, false)
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events. Codes missing here are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeCatalogTimeout:                "CATALOG_LOAD_FAILED",
	ErrCodeCatalogEmpty:                  "CATALOG_LOAD_FAILED",
	ErrCodeDatabaseConnectionFailed:      "CATALOG_LOAD_FAILED",
	ErrCodeElasticsearchConnectionFailed: "CATALOG_LOAD_FAILED",
	ErrCodeIndexNotFound:                 "CATALOG_LOAD_FAILED",
	ErrCodeAliasValidationFailed:         "ALIAS_STORE_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeAliasStoreFailed,
		ErrCodePlanLookupFailed,
		ErrCodeTurnLogFailed,
		ErrCodeAIRequestPublishFailed,
		ErrCodeAIClarificationFailed:
		return 3

	case ErrCodeCatalogTimeout:
		return 2

	case ErrCodeAIClarificationTimeout:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "ALIAS"):
		return "ALIAS"
	case strings.HasPrefix(codeStr, "AI_"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.HasPrefix(codeStr, "TURN_LOG"):
		return "DATABASE"
	case strings.HasPrefix(codeStr, "PLAN"):
		return "PLAN"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
