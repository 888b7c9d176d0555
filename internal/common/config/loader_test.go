package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const baseYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: sales
    user: sales
  redis:
    address: localhost:6379
`

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "sales-workers", cfg.App.Name)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "pro", cfg.Sales.DefaultPlan)
	assert.Equal(t, 1000.0, cfg.Sales.HighBudgetThreshold)
	assert.Equal(t, 20.0, cfg.Sales.LowBudgetThreshold)
	assert.Equal(t, 20, cfg.Sales.KeywordCandidateCap)
	assert.Equal(t, 3, cfg.Sales.AboveBudgetFallbackCount)
	assert.Equal(t, CatalogSourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, "products", cfg.Catalog.Table)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadFromFile_SalesSection(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, baseYAML+`
sales:
  default_plan: starter
  plan_limits:
    starter: 3
    enterprise: 8
catalog:
  source: elasticsearch
  index: shop-products
  cache_ttl: 120
database_extra: ignored
workers:
  process-turn:
    enabled: true
`))
	require.Error(t, err, "elasticsearch source without an address must fail")
	assert.Nil(t, cfg)

	cfg, err = LoadFromFile(writeConfig(t, baseYAML+`
  elasticsearch:
    addresses: ["http://es:9200"]
sales:
  default_plan: starter
  plan_limits:
    starter: 3
    enterprise: 8
catalog:
  source: elasticsearch
  index: shop-products
  cache_ttl: 120
workers:
  process-turn:
    enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, "starter", cfg.Sales.DefaultPlan)
	assert.Equal(t, 3, cfg.Sales.PlanLimits["starter"])
	assert.Equal(t, 8, cfg.Sales.PlanLimits["enterprise"])
	assert.Equal(t, "shop-products", cfg.Catalog.Index)
	assert.Equal(t, "http://es:9200", cfg.Database.Elasticsearch.GetURL())

	wc := GetWorkerConfig(cfg, "process-turn")
	assert.True(t, wc.Enabled)
	assert.Equal(t, 5, wc.MaxJobsActive)
	assert.Equal(t, 3, wc.MaxRetries)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "unknown catalog source",
			body:    baseYAML + "catalog:\n  source: mongo\n",
			wantErr: "catalog.source",
		},
		{
			name:    "non-positive plan limit",
			body:    baseYAML + "sales:\n  plan_limits:\n    starter: 0\n",
			wantErr: "sales.plan_limits.starter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_AI_KEY", "secret-key")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML+"ai:\n  api_key: ${TEST_AI_KEY}\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.AI.APIKey)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))

	cfg := &Config{Workers: map[string]WorkerConfig{"learn-alias": {Enabled: false}}}
	assert.False(t, IsWorkerEnabled(cfg, "learn-alias"))
	assert.True(t, IsWorkerEnabled(cfg, "process-turn"))
}
