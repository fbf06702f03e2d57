package engine

// RoutingPath identifies which pipeline produced a decision.
type RoutingPath string

const (
	PathContextOverride        RoutingPath = "context-override"
	PathRuleBased              RoutingPath = "rule-based"
	PathRuleBasedLowConfidence RoutingPath = "rule-based-low-confidence"
)

// Override tags recorded on a decision.
const (
	OverrideExplicitLock   = "explicit_lock"
	OverrideCategoryBias   = "category_bias"
	OverridePlanningBias   = "planning_mode_bias"
	OverrideCacheCoherence = "cache_coherence"
)

// Decision captures which model was chosen for a chat turn and why.
// Immutable once produced; the engine keeps no copy.
type Decision struct {
	Adapter          string      `json:"adapter,omitempty"`
	Model            string      `json:"model"`
	Tier             Tier        `json:"tier"`
	Score            float64     `json:"score"`
	Confidence       float64     `json:"confidence"`
	Reasoning        string      `json:"reasoning"`
	DetectedPatterns []string    `json:"detected_patterns,omitempty"`
	OverridesApplied []string    `json:"overrides_applied,omitempty"`
	RoutingPath      RoutingPath `json:"routing_path"`
}

// HasOverride reports whether a named override was applied.
func (d *Decision) HasOverride(name string) bool {
	for _, o := range d.OverridesApplied {
		if o == name {
			return true
		}
	}
	return false
}
