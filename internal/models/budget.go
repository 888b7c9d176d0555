// internal/models/budget.go
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsedBudget is the price window read from an utterance. When IsAmbiguous
// is set the price fields must not be used for filtering.
type ParsedBudget struct {
	MinPrice      *float64 `json:"minPrice"`
	MaxPrice      *float64 `json:"maxPrice"`
	HasBudgetWord bool     `json:"hasBudgetWord"`
	IsAmbiguous   bool     `json:"isAmbiguous"`
	Notes         []string `json:"notes,omitempty"`
}

// HasWindow reports whether a usable min or max is present.
func (b ParsedBudget) HasWindow() bool {
	return !b.IsAmbiguous && (b.MinPrice != nil || b.MaxPrice != nil)
}

// Contains reports whether price lies inside the window. An unusable window
// contains everything.
func (b ParsedBudget) Contains(price float64) bool {
	if !b.HasWindow() {
		return true
	}
	if b.MinPrice != nil && price < *b.MinPrice {
		return false
	}
	if b.MaxPrice != nil && price > *b.MaxPrice {
		return false
	}
	return true
}

func (b ParsedBudget) MinOnly() bool {
	return b.HasWindow() && b.MinPrice != nil && b.MaxPrice == nil
}

// Describe renders the window in German, e.g. "bis etwa 50 €".
func (b ParsedBudget) Describe() string {
	switch {
	case !b.HasWindow():
		return ""
	case b.MinPrice != nil && b.MaxPrice != nil:
		return fmt.Sprintf("zwischen %s und %s", FormatEuro(*b.MinPrice), FormatEuro(*b.MaxPrice))
	case b.MaxPrice != nil:
		return "bis etwa " + FormatEuro(*b.MaxPrice)
	default:
		return "ab etwa " + FormatEuro(*b.MinPrice)
	}
}

func Float(v float64) *float64 {
	return &v
}

// FormatEuro renders a price the way it is shown to German shoppers:
// "49,90 €", whole amounts without decimals.
func FormatEuro(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10) + " €"
	}
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1) + " €"
}
