// Package engine implements the per-turn LLM routing decision: a weighted
// signal score over the query text, fixed tier thresholds, context
// overrides, and a coherence guard that keeps an ongoing conversation from
// silently dropping to a weaker model.
package engine

import (
	"fmt"
	"log"
	"strings"

	"github.com/stratai-labs/autoroute/pkg/config"
)

// Engine routes chat turns to model tiers. Route is a pure function of its
// inputs: no I/O, no shared mutable state, safe for concurrent use without
// coordination.
type Engine struct {
	cfg        *config.EngineConfig
	classifier SemanticClassifier
	debug      bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier installs a semantic classifier consulted on
// low-confidence rule decisions.
func WithClassifier(c SemanticClassifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) Option {
	return func(e *Engine) {
		e.debug = debug
	}
}

// New creates an engine after validating the tier-to-model table.
// An incomplete table is a startup error, never a per-request one.
func New(cfg *config.EngineConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	for _, tier := range config.TierNames {
		target, ok := cfg.Target(tier)
		if !ok || target.Model == "" {
			return nil, &ConfigError{Tier: tier}
		}
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Route produces the routing decision for one chat turn.
func (e *Engine) Route(req Request) (*Decision, error) {
	trimmed := strings.TrimSpace(req.Query)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	if req.LockedModel != "" {
		return e.lockedDecision(req.LockedModel), nil
	}

	score, tags := analyzeQuery(trimmed)

	var overrides []string
	adjusted := score
	if bias := e.cfg.CategoryBias(string(req.Category)); bias != 0 {
		adjusted += bias
		overrides = append(overrides, OverrideCategoryBias)
	}
	if req.PlanningMode {
		adjusted += e.cfg.PlanningBias
		overrides = append(overrides, OverridePlanningBias)
	}
	adjusted = clampScore(adjusted)

	candidate := tierForScore(adjusted)
	confidence := confidenceForScore(adjusted)

	path := PathRuleBased
	if confidence < e.cfg.ClassifierThreshold {
		path = PathRuleBasedLowConfidence
		if e.classifier != nil {
			if t, c, ok := e.classifier.Classify(trimmed); ok {
				if e.debug {
					log.Printf("[engine] semantic classifier: %s (%.2f) over rule tier %s (%.2f)", t, c, candidate, confidence)
				}
				candidate, confidence = t, c
			}
		}
	}

	final, suppressed := applyCoherenceGuard(candidate, confidence, req.Turn, req.RecentScores)
	if suppressed {
		overrides = append(overrides, OverrideCacheCoherence)
	}

	target, _ := e.cfg.Target(final.String())
	decision := &Decision{
		Adapter:          target.Adapter,
		Model:            target.Model,
		Tier:             final,
		Score:            adjusted,
		Confidence:       confidence,
		Reasoning:        buildReasoning(adjusted, tags, candidate, final, confidence, suppressed),
		DetectedPatterns: tags,
		OverridesApplied: overrides,
		RoutingPath:      path,
	}

	if e.debug {
		log.Printf("[engine] turn %d: %s -> %s/%s (%s)", req.Turn, decision.Reasoning, decision.Adapter, decision.Model, decision.RoutingPath)
	}

	return decision, nil
}

// lockedDecision short-circuits scoring for an explicit model lock.
func (e *Engine) lockedDecision(model string) *Decision {
	tier := TierComplex
	adapter := ""
	for t := TierSimple; t <= TierComplex; t++ {
		if target, ok := e.cfg.Target(t.String()); ok && target.Model == model {
			tier = t
			adapter = target.Adapter
			break
		}
	}

	return &Decision{
		Adapter:          adapter,
		Model:            model,
		Tier:             tier,
		Confidence:       1,
		Reasoning:        fmt.Sprintf("explicit model lock on %s", model),
		OverridesApplied: []string{OverrideExplicitLock},
		RoutingPath:      PathContextOverride,
	}
}

func buildReasoning(adjusted float64, tags []string, candidate, final Tier, confidence float64, suppressed bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "base %.0f", baseScore)
	if len(tags) > 0 {
		fmt.Fprintf(&sb, ", signals %s", strings.Join(tags, "+"))
	}
	fmt.Fprintf(&sb, ", score %.1f -> %s (confidence %.2f)", adjusted, candidate, confidence)
	if suppressed {
		fmt.Fprintf(&sb, "; downgrade suppressed, pinned to %s", final)
	}
	return sb.String()
}
