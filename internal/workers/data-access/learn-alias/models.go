// internal/workers/data-access/learn-alias/models.go
package learnalias

type Input struct {
	ShopID string   `json:"shopId" validate:"required,max=64"`
	Alias  string   `json:"alias" validate:"required,min=2,max=64"`
	Terms  []string `json:"terms" validate:"required,min=1,max=10,dive,required,max=64"`
	Source string   `json:"source,omitempty" validate:"omitempty,oneof=ai operator import"`
}

type Output struct {
	ShopID string   `json:"shopId"`
	Alias  string   `json:"alias"`
	Terms  []string `json:"terms"`
	Stored bool     `json:"stored"`
}

const (
	SourceAI       = "ai"
	SourceOperator = "operator"
	SourceImport   = "import"
)
