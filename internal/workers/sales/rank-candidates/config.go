// internal/workers/sales/rank-candidates/config.go
package rankcandidates

import "time"

type Config struct {
	Timeout time.Duration
	// KeywordCandidateCap bounds the products kept after keyword scoring.
	KeywordCandidateCap int
	// AboveBudgetFallbackCount is how many products above the budget are
	// offered when nothing fits inside it.
	AboveBudgetFallbackCount int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                  5 * time.Second,
		KeywordCandidateCap:      20,
		AboveBudgetFallbackCount: 3,
	}
}
