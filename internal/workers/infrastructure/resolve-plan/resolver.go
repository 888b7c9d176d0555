// internal/workers/infrastructure/resolve-plan/resolver.go
package resolveplan

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"sales-workers/internal/common/database"
	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const planQuery = `SELECT plan FROM shop_plans WHERE shop_id = $1`

// Resolver looks up a shop's plan in shop_plans and keeps it in Redis under
// plan:<shopId>.
type Resolver struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewResolver(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Resolver {
	return &Resolver{
		config: config,
		db:     db,
		redis:  redisClient,
		logger: log,
	}
}

// ResolvePlan returns the configured default for shops without a row.
func (r *Resolver) ResolvePlan(ctx context.Context, shopID string) (models.Plan, error) {
	plan, _, err := r.resolve(ctx, shopID)
	return plan, err
}

func (r *Resolver) resolve(ctx context.Context, shopID string) (models.Plan, string, error) {
	key := database.PlanKey(shopID)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, key).Result()
		switch {
		case err == nil && val != "":
			return normalizePlan(val), SourceCache, nil
		case err != nil && !stderrors.Is(err, redis.Nil):
			r.logger.Warn("plan cache read failed", map[string]interface{}{
				"shopId": shopID,
				"error":  err.Error(),
			})
		}
	}

	var raw string
	err := r.db.QueryRowContext(ctx, planQuery, shopID).Scan(&raw)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return r.config.DefaultPlan, SourceDefault, nil
		}
		return "", "", errors.NewPlanLookupFailedError(shopID, err)
	}

	plan := normalizePlan(raw)
	if r.redis != nil {
		if err := r.redis.Set(ctx, key, string(plan), r.config.CacheTTL).Err(); err != nil {
			r.logger.Warn("plan cache write failed", map[string]interface{}{
				"shopId": shopID,
				"error":  err.Error(),
			})
		}
	}
	return plan, SourceDatabase, nil
}

// normalizePlan keeps unknown names; they get the default limit downstream.
func normalizePlan(raw string) models.Plan {
	return models.Plan(strings.ToLower(strings.TrimSpace(raw)))
}
