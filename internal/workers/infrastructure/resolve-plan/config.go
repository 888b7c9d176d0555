// internal/workers/infrastructure/resolve-plan/config.go
package resolveplan

import (
	"time"

	"sales-workers/internal/models"
)

type Config struct {
	Timeout     time.Duration
	CacheTTL    time.Duration
	DefaultPlan models.Plan
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		CacheTTL:    5 * time.Minute,
		DefaultPlan: models.PlanPro,
	}
}
