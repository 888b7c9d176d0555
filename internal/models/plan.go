// internal/models/plan.go
package models

import "strings"

type Plan string

const (
	PlanStarter    Plan = "starter"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// DefaultPlanLimit applies to unknown plans.
const DefaultPlanLimit = 4

var planLimits = map[Plan]int{
	PlanStarter:    2,
	PlanPro:        4,
	PlanEnterprise: 6,
}

// MaxRecommendations returns how many products a plan may show per turn.
func (p Plan) MaxRecommendations() int {
	if limit, ok := planLimits[Plan(strings.ToLower(strings.TrimSpace(string(p))))]; ok {
		return limit
	}
	return DefaultPlanLimit
}

// PlanLimitsOverride lets configuration replace the built-in limits. Unknown
// plans and non-positive values fall back to MaxRecommendations.
type PlanLimitsOverride map[string]int

func (o PlanLimitsOverride) Limit(p Plan) int {
	if v, ok := o[strings.ToLower(string(p))]; ok && v > 0 {
		return v
	}
	return p.MaxRecommendations()
}
