package detectproductcode

import (
	"context"
	"testing"
	"time"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCatalog() []models.Product {
	return []models.Product{
		{ID: "sku-ab12", Title: "Snowboard Freeride", Category: "snowboard", Price: 299},
		{ID: "p2", Title: "Wasserkocher WK200", Category: "haushalt", Price: 39, Tags: []string{"küche"}},
		{ID: "p3", Title: "Smartphone Alpha 128GB", Category: "elektronik", Price: 399},
	}
}

func TestLooksLikeCode(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
	}{
		{"XY9000Z", true},
		{"abc123", true},
		{"ABC-XYZ", true},
		{"T-Shirt", false},
		{"2023", false},
		{"10-20", false},
		{"128GB", false},
		{"500ml", false},
		{"ab1", false},
		{"snowboard", false},
		{"a1234567890123456789b", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksLikeCode(tt.token))
		})
	}
}

func TestDetect(t *testing.T) {
	catalog := createTestCatalog()

	tests := []struct {
		name           string
		text           string
		validateOutput func(t *testing.T, r Result)
	}{
		{
			name: "unknown mixed code",
			text: "Habt ihr XY9000Z?",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "xy9000z", r.CodeTerm)
				assert.Equal(t, ShapeMixed, r.Shape)
				assert.False(t, r.ExistsInCatalog)
			},
		},
		{
			name: "known code in title",
			text: "Ist der WK200 noch da?",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "wk200", r.CodeTerm)
				assert.True(t, r.ExistsInCatalog)
			},
		},
		{
			name: "two codes are not a single code",
			text: "AB12 oder CD34",
			validateOutput: func(t *testing.T, r Result) {
				assert.False(t, r.Found())
			},
		},
		{
			name: "pure letter code",
			text: "Zeige mir ABCDFG",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "abcdfg", r.CodeTerm)
				assert.Equal(t, ShapeWord, r.Shape)
			},
		},
		{
			name: "catalog word is not a code",
			text: "Zeige mir Freeride",
			validateOutput: func(t *testing.T, r Result) {
				assert.False(t, r.Found())
			},
		},
		{
			name: "known category word is not a code",
			text: "Zeige mir Snowboards",
			validateOutput: func(t *testing.T, r Result) {
				assert.False(t, r.Found())
			},
		},
		{
			name: "budget only",
			text: "Ich habe 50 Euro Budget",
			validateOutput: func(t *testing.T, r Result) {
				assert.False(t, r.Found())
			},
		},
		{
			name: "several words",
			text: "ich suche etwas warmes gemütliches",
			validateOutput: func(t *testing.T, r Result) {
				assert.False(t, r.Found())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateOutput(t, Detect(tt.text, catalog))
		})
	}
}

func TestInCatalog_ChecksIDs(t *testing.T) {
	assert.True(t, InCatalog("SKU-AB12", createTestCatalog()))
	assert.False(t, InCatalog("", createTestCatalog()))
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Text: "XY9000Z", Catalog: createTestCatalog()})
	require.NoError(t, err)
	assert.Equal(t, "xy9000z", out.CodeTerm)
}
