// internal/workers/sales/decide-ai-trigger/config.go
package decideaitrigger

import "time"

// HighBudgetThreshold separates budgets that are confident enough to answer
// without AI from small ones. LowBudgetThreshold marks category-less budgets
// too small to search the catalog with.
type Config struct {
	Timeout             time.Duration
	HighBudgetThreshold float64
	LowBudgetThreshold  float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             5 * time.Second,
		HighBudgetThreshold: 1000,
		LowBudgetThreshold:  20,
	}
}
