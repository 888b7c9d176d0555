// internal/workers/sales/compose-reply/storefacts.go
package composereply

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// StoreFacts are merchant-maintained service facts passed through the
// conversation context untouched.
type StoreFacts struct {
	ShopName string `mapstructure:"shopName"`
	Shipping struct {
		Carriers                 []string `mapstructure:"carriers"`
		Regions                  []string `mapstructure:"regions"`
		DeliveryTimeHint         string   `mapstructure:"deliveryTimeHint"`
		CostsHint                string   `mapstructure:"costsHint"`
		FreeShippingThresholdEur *float64 `mapstructure:"freeShippingThresholdEur"`
	} `mapstructure:"shipping"`
	Returns struct {
		ReturnWindowDays *int   `mapstructure:"returnWindowDays"`
		ConditionsHint   string `mapstructure:"conditionsHint"`
		ProcessHint      string `mapstructure:"processHint"`
	} `mapstructure:"returns"`
	Warranty struct {
		WarrantyHint string `mapstructure:"warrantyHint"`
	} `mapstructure:"warranty"`
}

// DecodeStoreFacts reads the opaque context map. Unknown keys are ignored
// and a malformed map yields empty facts.
func DecodeStoreFacts(raw map[string]interface{}) StoreFacts {
	var facts StoreFacts
	if len(raw) == 0 {
		return facts
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &facts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return StoreFacts{}
	}
	if err := decoder.Decode(raw); err != nil {
		return StoreFacts{}
	}
	return facts
}

func (f StoreFacts) shippingAnswer() string {
	s := f.Shipping
	parts := []string{s.DeliveryTimeHint, s.CostsHint}
	if len(s.Carriers) > 0 {
		parts = append(parts, "Versand mit "+strings.Join(s.Carriers, ", ")+".")
	}
	if len(s.Regions) > 0 {
		parts = append(parts, "Lieferung nach "+strings.Join(s.Regions, ", ")+".")
	}
	if s.FreeShippingThresholdEur != nil {
		parts = append(parts, fmt.Sprintf("Ab %s ist der Versand kostenlos.", formatPrice(*s.FreeShippingThresholdEur)))
	}
	return joinParts(parts)
}

func (f StoreFacts) returnsAnswer() string {
	r := f.Returns
	var parts []string
	if r.ReturnWindowDays != nil {
		parts = append(parts, fmt.Sprintf("Du kannst innerhalb von %d Tagen zurückgeben.", *r.ReturnWindowDays))
	}
	parts = append(parts, r.ConditionsHint, r.ProcessHint, f.Warranty.WarrantyHint)
	return joinParts(parts)
}

func joinParts(parts []string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
