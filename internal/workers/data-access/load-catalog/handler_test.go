package loadcatalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const catalogQueryPattern = `SELECT id, title, description, price, category, tags, rating, popularity_score FROM products WHERE shop_id = \$1 ORDER BY id LIMIT 5000`

var catalogColumns = []string{"id", "title", "description", "price", "category", "tags", "rating", "popularity_score"}

func createTestConfig() *Config {
	cfg := LoadConfig()
	cfg.Timeout = 2 * time.Second
	return cfg
}

type stubSource struct {
	calls    int32
	products []models.Product
	err      error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, shopID string) ([]models.Product, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.products, s.err
}

// newESServer fakes the search endpoint; the client requires the product header.
func newESServer(t *testing.T, status int, body string, captured *map[string]interface{}) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil && r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, captured)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

// ==========================
// Postgres Source
// ==========================

func TestPostgresSource_Fetch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(catalogQueryPattern).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("sb-1", "Snowboard Freeride", "Für Tiefschnee", 249.99, "snowboard", []byte(`["powder","freeride"]`), 4.5, 12.0).
			AddRow("k-1", "Feuchtigkeitscreme", nil, 19.9, nil, []byte(`kaputt`), nil, nil))

	source, err := NewPostgresSource(db, "products", 5000)
	require.NoError(t, err)

	products, err := source.Fetch(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "sb-1", products[0].ID)
	assert.Equal(t, []string{"powder", "freeride"}, products[0].Tags)
	assert.Equal(t, 4.5, products[0].Rating)
	assert.Equal(t, "", products[1].Category)
	assert.Nil(t, products[1].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_RejectsTableName(t *testing.T) {
	_, err := NewPostgresSource(nil, "products; DROP TABLE x", 10)
	assert.Error(t, err)
}

func TestPostgresSource_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(catalogQueryPattern).WillReturnError(stderrors.New("relation does not exist"))

	source, err := NewPostgresSource(db, "products", 5000)
	require.NoError(t, err)

	_, err = source.Fetch(context.Background(), "shop-1")
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, errors.AsStandardError(err).Code)
}

// ==========================
// Elasticsearch Source
// ==========================

func TestElasticsearchSource_Fetch(t *testing.T) {
	var captured map[string]interface{}
	client := newESServer(t, http.StatusOK, `{
		"hits": {"hits": [
			{"_id": "doc-1", "_source": {"id": "sb-1", "title": "Snowboard Freeride", "price": 249.99, "category": "snowboard", "tags": ["powder"]}},
			{"_id": "doc-2", "_source": {"title": "Wasserkocher", "price": 29, "category": "haushalt", "popularity_score": 3}}
		]}
	}`, &captured)

	source := NewElasticsearchSource(client, "products", 100)
	products, err := source.Fetch(context.Background(), "shop-1")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "sb-1", products[0].ID)
	assert.Equal(t, "doc-2", products[1].ID)
	assert.Equal(t, 3.0, products[1].PopularityScore)

	filter := captured["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	term := filter[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "shop-1", term["shop_id"])
}

func TestElasticsearchSource_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		errorCode errors.ErrorCode
	}{
		{"missing index", http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`, errors.ErrCodeIndexNotFound},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, errors.ErrCodeSearchQueryFailed},
		{"malformed body", http.StatusOK, `{"hits":`, errors.ErrCodeSearchQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewElasticsearchSource(newESServer(t, tt.status, tt.body, nil), "products", 10)
			_, err := source.Fetch(context.Background(), "shop-1")
			require.Error(t, err)
			assert.Equal(t, tt.errorCode, errors.AsStandardError(err).Code)
		})
	}
}

// ==========================
// Provider and Handler
// ==========================

func TestProvider_CachesPerShop(t *testing.T) {
	source := &stubSource{products: []models.Product{
		{ID: "a", Title: "A", Price: 10},
		{ID: "a", Title: "duplicate", Price: 11},
		{ID: "b", Title: "B", Price: -5},
	}}
	provider := NewProvider(source, time.Minute, logger.NewTestLogger(t))

	first, err := provider.LoadCatalog(context.Background(), "shop-1")
	require.NoError(t, err)
	second, err := provider.LoadCatalog(context.Background(), "shop-1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, 0.0, first[1].Price)

	_, err = provider.LoadCatalog(context.Background(), "shop-2")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&source.calls))

	provider.Invalidate("shop-1")
	_, err = provider.LoadCatalog(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&source.calls))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		source         *stubSource
		warmCache      bool
		expectError    bool
		errorCode      errors.ErrorCode
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:   "fresh load",
			input:  &Input{ShopID: "shop-1"},
			source: &stubSource{products: []models.Product{{ID: "sb-1", Title: "Snowboard", Price: 199}}},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.Count)
				assert.False(t, output.Cached)
				assert.Equal(t, "stub", output.Source)
			},
		},
		{
			name:      "cached load",
			input:     &Input{ShopID: "shop-1"},
			source:    &stubSource{products: []models.Product{{ID: "sb-1"}}},
			warmCache: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.Cached)
			},
		},
		{
			name:      "refresh bypasses cache",
			input:     &Input{ShopID: "shop-1", Refresh: true},
			source:    &stubSource{products: []models.Product{{ID: "sb-1"}}},
			warmCache: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.Cached)
			},
		},
		{
			name:        "missing shop id",
			input:       &Input{},
			source:      &stubSource{},
			expectError: true,
			errorCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:        "deadline maps to catalog timeout",
			input:       &Input{ShopID: "shop-1"},
			source:      &stubSource{err: context.DeadlineExceeded},
			expectError: true,
			errorCode:   errors.ErrCodeCatalogTimeout,
		},
		{
			name:        "plain error maps to catalog load failed",
			input:       &Input{ShopID: "shop-1"},
			source:      &stubSource{err: stderrors.New("boom")},
			expectError: true,
			errorCode:   errors.ErrCodeCatalogLoadFailed,
		},
		{
			name:        "standard error passes through",
			input:       &Input{ShopID: "shop-1"},
			source:      &stubSource{err: errors.NewIndexNotFoundError("products")},
			expectError: true,
			errorCode:   errors.ErrCodeIndexNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProvider(tt.source, time.Minute, logger.NewTestLogger(t))
			if tt.warmCache {
				_, err := provider.LoadCatalog(context.Background(), tt.input.ShopID)
				require.NoError(t, err)
			}
			handler := NewHandler(createTestConfig(), provider, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.errorCode, errors.AsStandardError(err).Code)
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}
