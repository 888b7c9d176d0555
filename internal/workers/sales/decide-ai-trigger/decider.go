// internal/workers/sales/decide-ai-trigger/decider.go
package decideaitrigger

// Decide runs the rules in order. Without a matching rule the outcome is
// NoTrigger.
func Decide(s Signals) Decision {
	unknown := filterUnknown(s.UnknownTerms)
	for _, rule := range rules {
		if d, ok := rule.Apply(&s, unknown); ok {
			d.Rule = rule.Name
			return d
		}
	}
	return Decision{Outcome: NoTrigger}
}

// RuleNames lists the rules in evaluation order.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	return names
}
