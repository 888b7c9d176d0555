// internal/workers/sales/detect-product-code/models.go
package detectproductcode

import "sales-workers/internal/models"

// Shape tells which heuristic recognized the code.
type Shape string

const (
	ShapeMixed     Shape = "mixed"
	ShapeDelimited Shape = "delimited"
	ShapeWord      Shape = "word"
)

type Result struct {
	CodeTerm        string `json:"codeTerm,omitempty"`
	Shape           Shape  `json:"shape,omitempty"`
	ExistsInCatalog bool   `json:"existsInCatalog"`
}

// Found reports whether a code-shaped term was detected.
func (r Result) Found() bool {
	return r.CodeTerm != ""
}

type Input struct {
	Text    string           `json:"text"`
	Catalog []models.Product `json:"catalog"`
}

type Output struct {
	Result
}
