package validation

import (
	"testing"

	"sales-workers/internal/common/errors"
	"sales-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *registry.ActivityRegistry {
	return &registry.ActivityRegistry{
		Version: "1.0.0",
		Activities: []registry.Activity{
			{
				ID:       "sales.turn.process",
				TaskType: "process-turn",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"shopId", "text"},
					"properties": map[string]interface{}{
						"shopId": map[string]interface{}{"type": "string", "minLength": 1},
						"text":   map[string]interface{}{"type": "string"},
						"plan": map[string]interface{}{
							"type": "string",
							"enum": []interface{}{"starter", "pro", "enterprise"},
						},
						"context": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"activeCategory": map[string]interface{}{"type": "string"},
							},
						},
					},
				},
			},
			{ID: "sales.budget.parse", TaskType: "parse-budget"},
		},
	}
}

func TestSchemaValidator_Validate(t *testing.T) {
	v, err := NewSchemaValidator(testRegistry())
	require.NoError(t, err)

	tests := []struct {
		name        string
		taskType    string
		document    string
		expectValid bool
		errorField  string
	}{
		{
			name:        "valid turn",
			taskType:    "process-turn",
			document:    `{"shopId":"shop-1","text":"snowboard unter 300","extra":true}`,
			expectValid: true,
		},
		{
			name:       "missing text",
			taskType:   "process-turn",
			document:   `{"shopId":"shop-1"}`,
			errorField: "(root)",
		},
		{
			name:       "unknown plan",
			taskType:   "process-turn",
			document:   `{"shopId":"shop-1","text":"hi","plan":"gold"}`,
			errorField: "plan",
		},
		{
			name:       "nested type mismatch",
			taskType:   "process-turn",
			document:   `{"shopId":"shop-1","text":"hi","context":{"activeCategory":3}}`,
			errorField: "context.activeCategory",
		},
		{
			name:        "task type without schema",
			taskType:    "parse-budget",
			document:    `{}`,
			expectValid: true,
		},
		{
			name:       "malformed json",
			taskType:   "process-turn",
			document:   `{"shopId":`,
			errorField: "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.taskType, []byte(tt.document))
			assert.Equal(t, tt.expectValid, result.Valid)
			if tt.errorField != "" {
				assert.NotEmpty(t, result.GetErrorsForField(tt.errorField), result.GetErrorMessages())
			}
		})
	}
}

func TestSchemaValidator_ValidateJSON(t *testing.T) {
	v, err := NewSchemaValidator(testRegistry())
	require.NoError(t, err)

	assert.NoError(t, v.ValidateJSON("process-turn", `{"shopId":"s","text":"t"}`))

	err = v.ValidateJSON("process-turn", `{"shopId":""}`)
	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
	assert.Equal(t, "process-turn", stdErr.Metadata["taskType"])
	assert.Contains(t, stdErr.Details, "text")

	assert.True(t, v.HasSchema("process-turn"))
	assert.False(t, v.HasSchema("parse-budget"))
}

func TestNewSchemaValidator_RejectsBrokenSchema(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{
		{ID: "a.b.c", TaskType: "x", InputSchema: map[string]interface{}{"type": 5}},
	}}

	_, err := NewSchemaValidator(reg)
	assert.Error(t, err)
}
