// internal/workers/sales/extract-attributes/models.go
package extractattributes

import "sales-workers/internal/models"

type Input struct {
	Text    string           `json:"text"`
	Catalog []models.Product `json:"catalog"`
}

type Output struct {
	Query models.ParsedQuery    `json:"query"`
	Index models.AttributeIndex `json:"index"`
}
