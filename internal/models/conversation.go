// internal/models/conversation.go
package models

type ReplyMode string

const (
	ReplyModeCustomer ReplyMode = "customer"
	ReplyModeOperator ReplyMode = "operator"
)

// ConversationContext is the only state carried between turns. The caller
// stores the NextContext of a TurnResult and passes it back on the next turn.
type ConversationContext struct {
	ActiveCategorySlug *string                `json:"activeCategorySlug,omitempty"`
	BudgetParse        *ParsedBudget          `json:"budgetParse,omitempty"`
	DynamicAliases     map[string][]string    `json:"dynamicAliases,omitempty"`
	ReplyMode          ReplyMode              `json:"replyMode,omitempty"`
	StoreFacts         map[string]interface{} `json:"storeFacts,omitempty"`
}

// ActiveCategory returns the active category or "".
func (c *ConversationContext) ActiveCategory() string {
	if c == nil || c.ActiveCategorySlug == nil {
		return ""
	}
	return *c.ActiveCategorySlug
}

func (c *ConversationContext) Mode() ReplyMode {
	if c == nil || c.ReplyMode == "" {
		return ReplyModeCustomer
	}
	return c.ReplyMode
}

func (c *ConversationContext) Aliases() map[string][]string {
	if c == nil {
		return nil
	}
	return c.DynamicAliases
}

func String(s string) *string {
	return &s
}
