// internal/models/intent.go
package models

type Intent string

const (
	IntentQuickBuy Intent = "quick_buy"
	IntentExplore  Intent = "explore"
	IntentPremium  Intent = "premium"
	IntentBargain  Intent = "bargain"
	IntentGift     Intent = "gift"
	IntentBundle   Intent = "bundle"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentQuickBuy, IntentExplore, IntentPremium, IntentBargain, IntentGift, IntentBundle:
		return true
	}
	return false
}

// OrDefault returns i when valid, otherwise quick_buy.
func (i Intent) OrDefault() Intent {
	if i.Valid() {
		return i
	}
	return IntentQuickBuy
}

// ExplanationMode is the kind of product question asked in explanation mode.
type ExplanationMode string

const (
	ExplanationNone        ExplanationMode = ""
	ExplanationIngredients ExplanationMode = "ingredients"
	ExplanationMaterials   ExplanationMode = "materials"
	ExplanationUsage       ExplanationMode = "usage"
	ExplanationWashing     ExplanationMode = "washing"
)
