// internal/workers/sales/process-turn/config.go
package processturn

import (
	"time"

	"sales-workers/internal/models"
)

type Config struct {
	Timeout time.Duration
	// CatalogTimeout bounds the catalog provider call inside Timeout.
	CatalogTimeout time.Duration

	HighBudgetThreshold      float64
	LowBudgetThreshold       float64
	KeywordCandidateCap      int
	AboveBudgetFallbackCount int
	SnippetLength            int

	PlanLimits  models.PlanLimitsOverride
	DefaultPlan models.Plan

	// SlowTurnThreshold logs a warning for turns taking longer.
	SlowTurnThreshold time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                  10 * time.Second,
		CatalogTimeout:           5 * time.Second,
		HighBudgetThreshold:      1000,
		LowBudgetThreshold:       20,
		KeywordCandidateCap:      20,
		AboveBudgetFallbackCount: 3,
		SnippetLength:            140,
		DefaultPlan:              models.PlanPro,
		SlowTurnThreshold:        500 * time.Millisecond,
	}
}

// Options returns the tuning knobs ProcessTurn reads from the config.
func (c *Config) Options() Options {
	return Options{
		PlanLimits:          c.PlanLimits,
		HighBudgetThreshold: c.HighBudgetThreshold,
		LowBudgetThreshold:  c.LowBudgetThreshold,
		KeywordCap:          c.KeywordCandidateCap,
		AboveBudget:         c.AboveBudgetFallbackCount,
		SnippetLength:       c.SnippetLength,
	}
}
