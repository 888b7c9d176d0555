// internal/workers/sales/parse-budget/models.go
package parsebudget

import "sales-workers/internal/models"

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Budget models.ParsedBudget `json:"budget"`
}
