// internal/models/turn.go
package models

// AiTriggerReason is the closed set of reasons for requesting AI help.
type AiTriggerReason string

const (
	ReasonUnknownProductCodeOnly       AiTriggerReason = "unknown_product_code_only"
	ReasonNoResultsWithUnknownKeywords AiTriggerReason = "no_results_with_unknown_keywords"
	ReasonLowConfidenceUnknownTerms    AiTriggerReason = "low_confidence_unknown_terms"
	ReasonManyUnknownTerms             AiTriggerReason = "many_unknown_terms"
	ReasonUnknownTermWithBudget        AiTriggerReason = "unknown_term_with_budget"
	ReasonPriceRangeNoMatch            AiTriggerReason = "price_range_no_match"
	ReasonBudgetOnlyLowBudget          AiTriggerReason = "budget_only_low_budget"
	ReasonEmptyCatalog                 AiTriggerReason = "empty_catalog"
)

var aiTriggerReasons = []AiTriggerReason{
	ReasonUnknownProductCodeOnly, ReasonNoResultsWithUnknownKeywords, ReasonLowConfidenceUnknownTerms,
	ReasonManyUnknownTerms, ReasonUnknownTermWithBudget, ReasonPriceRangeNoMatch,
	ReasonBudgetOnlyLowBudget, ReasonEmptyCatalog,
}

func (r AiTriggerReason) Valid() bool {
	for _, known := range aiTriggerReasons {
		if r == known {
			return true
		}
	}
	return false
}

// AiTrigger carries the request for external clarification.
type AiTrigger struct {
	NeedsAiHelp  bool            `json:"needsAiHelp"`
	Reason       AiTriggerReason `json:"reason"`
	UnknownTerms []string        `json:"unknownTerms,omitempty"`
	CodeTerm     string          `json:"codeTerm,omitempty"`
	QueryForAi   string          `json:"queryForAi,omitempty"`
}

// SalesAction is the closed set of primary sales actions.
type SalesAction string

const (
	ActionShowProducts          SalesAction = "SHOW_PRODUCTS"
	ActionAskClarification      SalesAction = "ASK_CLARIFICATION"
	ActionOfferUpsell           SalesAction = "OFFER_UPSELL"
	ActionOfferCrossSell        SalesAction = "OFFER_CROSS_SELL"
	ActionExplainBudgetMismatch SalesAction = "EXPLAIN_BUDGET_MISMATCH"
	ActionShowDeliveryInfo      SalesAction = "SHOW_DELIVERY_INFO"
	ActionShowReturnsInfo       SalesAction = "SHOW_RETURNS_INFO"
	ActionHandleObjection       SalesAction = "HANDLE_OBJECTION"
	ActionCTAAddToCart          SalesAction = "CTA_ADD_TO_CART"
)

// SalesNote tags supporting observations attached to a decision.
type SalesNote string

const (
	NoteDeliveryQuestion      SalesNote = "delivery_question"
	NoteReturnQuestion        SalesNote = "return_question"
	NotePriceObjection        SalesNote = "price_objection"
	NoteBudgetMismatch        SalesNote = "budget_mismatch"
	NoteUpsellOpportunity     SalesNote = "upsell_opportunity"
	NoteCrossSellOpportunity  SalesNote = "cross_sell_opportunity"
	NoteLowBudget             SalesNote = "low_budget"
	NoteAmbiguousCategoryTerm SalesNote = "ambiguous_category_term"
	NoteVagueRequest          SalesNote = "vague_request"
	NoteBuyIntent             SalesNote = "buy_intent"
)

type CTA string

const (
	CTANone             CTA = "NONE"
	CTAAddToCart        CTA = "ADD_TO_CART"
	CTAContinueQuestion CTA = "CONTINUE_QUESTION"
)

type SalesDecision struct {
	PrimaryAction         SalesAction `json:"primaryAction"`
	Notes                 []SalesNote `json:"notes"`
	CTA                   CTA         `json:"cta,omitempty"`
	ClarificationQuestion string      `json:"clarificationQuestion,omitempty"`
	UpsellProductIDs      []string    `json:"upsellProductIds,omitempty"`
}

func (d SalesDecision) HasNote(n SalesNote) bool {
	for _, note := range d.Notes {
		if note == n {
			return true
		}
	}
	return false
}

// PriceRangeInfo explains a budget that matched no product directly.
type PriceRangeInfo struct {
	UserMinPrice        *float64 `json:"userMinPrice,omitempty"`
	UserMaxPrice        *float64 `json:"userMaxPrice,omitempty"`
	CategoryMinPrice    *float64 `json:"categoryMinPrice,omitempty"`
	CategoryMaxPrice    *float64 `json:"categoryMaxPrice,omitempty"`
	NearestAbovePrice   *float64 `json:"nearestAbovePrice,omitempty"`
	NearestAboveTitle   string   `json:"nearestAboveTitle,omitempty"`
	NearestBelowPrice   *float64 `json:"nearestBelowPrice,omitempty"`
	NearestBelowTitle   string   `json:"nearestBelowTitle,omitempty"`
	FallbackAboveBudget bool     `json:"fallbackAboveBudget"`
}

// TraceEvent is one structured step recorded while processing a turn.
type TraceEvent struct {
	Stage   string                 `json:"stage"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Trace collects events in order.
type Trace []TraceEvent

func (t *Trace) Add(stage, message string, fields map[string]interface{}) {
	*t = append(*t, TraceEvent{Stage: stage, Message: message, Fields: fields})
}

// TurnResult is everything a single turn produces.
type TurnResult struct {
	Intent              Intent               `json:"intent"`
	Recommended         []Product            `json:"recommended"`
	ReplyText           string               `json:"replyText"`
	NextContext         *ConversationContext `json:"nextContext,omitempty"`
	AiTrigger           *AiTrigger           `json:"aiTrigger,omitempty"`
	PriceRangeNoMatch   bool                 `json:"priceRangeNoMatch,omitempty"`
	PriceRangeInfo      *PriceRangeInfo      `json:"priceRangeInfo,omitempty"`
	MissingCategoryHint string               `json:"missingCategoryHint,omitempty"`
	ExplanationMode     ExplanationMode      `json:"explanationMode,omitempty"`
	SalesDecision       SalesDecision        `json:"salesDecision"`
	Trace               Trace                `json:"trace,omitempty"`
}
