package resolveplan

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const planQueryPattern = `SELECT plan FROM shop_plans WHERE shop_id = \$1`

func createTestConfig() *Config {
	return &Config{
		Timeout:     time.Second,
		CacheTTL:    5 * time.Minute,
		DefaultPlan: models.PlanPro,
	}
}

func createTestHandler(t *testing.T, db *sql.DB, redisClient *redis.Client) *Handler {
	return NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		shopID         string
		setupMocks     func(db sqlmock.Sqlmock, rm redismock.ClientMock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:   "cache miss reads database and fills cache",
			shopID: "shop-1",
			setupMocks: func(db sqlmock.Sqlmock, rm redismock.ClientMock) {
				rm.ExpectGet("plan:shop-1").RedisNil()
				db.ExpectQuery(planQueryPattern).
					WithArgs("shop-1").
					WillReturnRows(sqlmock.NewRows([]string{"plan"}).AddRow("Starter"))
				rm.ExpectSet("plan:shop-1", "starter", 5*time.Minute).SetVal("OK")
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, models.PlanStarter, output.Plan)
				assert.Equal(t, 2, output.MaxRecommendations)
				assert.Equal(t, SourceDatabase, output.Source)
			},
		},
		{
			name:   "cache hit skips database",
			shopID: "shop-2",
			setupMocks: func(db sqlmock.Sqlmock, rm redismock.ClientMock) {
				rm.ExpectGet("plan:shop-2").SetVal("enterprise")
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, models.PlanEnterprise, output.Plan)
				assert.Equal(t, 6, output.MaxRecommendations)
				assert.Equal(t, SourceCache, output.Source)
			},
		},
		{
			name:   "unknown shop gets default plan",
			shopID: "shop-3",
			setupMocks: func(db sqlmock.Sqlmock, rm redismock.ClientMock) {
				rm.ExpectGet("plan:shop-3").RedisNil()
				db.ExpectQuery(planQueryPattern).
					WithArgs("shop-3").
					WillReturnError(sql.ErrNoRows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, models.PlanPro, output.Plan)
				assert.Equal(t, 4, output.MaxRecommendations)
				assert.Equal(t, SourceDefault, output.Source)
			},
		},
		{
			name:   "unknown plan name keeps default limit",
			shopID: "shop-4",
			setupMocks: func(db sqlmock.Sqlmock, rm redismock.ClientMock) {
				rm.ExpectGet("plan:shop-4").RedisNil()
				db.ExpectQuery(planQueryPattern).
					WithArgs("shop-4").
					WillReturnRows(sqlmock.NewRows([]string{"plan"}).AddRow("gold"))
				rm.ExpectSet("plan:shop-4", "gold", 5*time.Minute).SetVal("OK")
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, models.Plan("gold"), output.Plan)
				assert.Equal(t, models.DefaultPlanLimit, output.MaxRecommendations)
			},
		},
		{
			name:   "redis failure falls through to database",
			shopID: "shop-5",
			setupMocks: func(db sqlmock.Sqlmock, rm redismock.ClientMock) {
				rm.ExpectGet("plan:shop-5").SetErr(stderrors.New("connection reset"))
				db.ExpectQuery(planQueryPattern).
					WithArgs("shop-5").
					WillReturnRows(sqlmock.NewRows([]string{"plan"}).AddRow("pro"))
				rm.ExpectSet("plan:shop-5", "pro", 5*time.Minute).SetErr(stderrors.New("connection reset"))
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, models.PlanPro, output.Plan)
				assert.Equal(t, SourceDatabase, output.Source)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbMock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			redisClient, redisMock := redismock.NewClientMock()

			tt.setupMocks(dbMock, redisMock)

			handler := createTestHandler(t, db, redisClient)
			output, err := handler.Execute(context.Background(), &Input{ShopID: tt.shopID})

			require.NoError(t, err)
			require.NotNil(t, output)
			tt.validateOutput(t, output)

			assert.NoError(t, dbMock.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("missing shop id", func(t *testing.T) {
		handler := createTestHandler(t, nil, nil)

		_, err := handler.Execute(context.Background(), &Input{ShopID: "  "})

		stdErr := errors.AsStandardError(err)
		assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
		assert.False(t, stdErr.Retryable)
	})

	t.Run("database failure is retryable", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		redisClient, redisMock := redismock.NewClientMock()

		redisMock.ExpectGet("plan:shop-9").RedisNil()
		dbMock.ExpectQuery(planQueryPattern).
			WithArgs("shop-9").
			WillReturnError(stderrors.New("too many connections"))

		handler := createTestHandler(t, db, redisClient)
		_, err = handler.Execute(context.Background(), &Input{ShopID: "shop-9"})

		stdErr := errors.AsStandardError(err)
		assert.Equal(t, errors.ErrCodePlanLookupFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
		assert.Equal(t, "shop-9", stdErr.Metadata["shopId"])
	})
}

func TestResolver_WithoutRedis(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(planQueryPattern).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan"}).AddRow(" enterprise "))

	resolver := NewResolver(createTestConfig(), db, nil, logger.NewTestLogger(t))
	plan, err := resolver.ResolvePlan(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Equal(t, models.PlanEnterprise, plan)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
