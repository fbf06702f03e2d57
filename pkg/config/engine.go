package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier names recognized by the engine configuration, in capability order.
var TierNames = []string{"simple", "medium", "complex"}

// EngineConfig holds the routing engine configuration.
type EngineConfig struct {
	Tiers                map[string]TierTarget `yaml:"tiers"`
	CategoryBiases       map[string]float64    `yaml:"category_biases,omitempty"`
	PlanningBias         float64               `yaml:"planning_bias,omitempty"`
	ClassifierThreshold  float64               `yaml:"classifier_threshold,omitempty"`
	HistoryWindowMinutes int                   `yaml:"history_window_minutes,omitempty"`
}

// TierTarget binds a capability tier to an adapter and model.
type TierTarget struct {
	Adapter string `yaml:"adapter"`
	Model   string `yaml:"model"`
}

// LoadEngineConfig reads engine configuration from a YAML file.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEngineDefaults(&cfg)
	return &cfg, nil
}

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() *EngineConfig {
	cfg := &EngineConfig{
		Tiers: map[string]TierTarget{
			"simple": {
				Adapter: "openai",
				Model:   "gpt-5.2-instant",
			},
			"medium": {
				Adapter: "anthropic",
				Model:   "claude-sonnet-4-20250514",
			},
			"complex": {
				Adapter: "anthropic",
				Model:   "claude-opus-4-20250514",
			},
		},
		CategoryBiases: map[string]float64{
			"coding":   10,
			"writing":  15,
			"research": 10,
			"general":  0,
		},
	}

	applyEngineDefaults(cfg)
	return cfg
}

// Target returns the configured target for a tier name.
func (c *EngineConfig) Target(tier string) (TierTarget, bool) {
	if c == nil || c.Tiers == nil {
		return TierTarget{}, false
	}
	t, ok := c.Tiers[tier]
	return t, ok
}

// CategoryBias returns the additive score bias for a workspace category.
func (c *EngineConfig) CategoryBias(category string) float64 {
	if c == nil || c.CategoryBiases == nil {
		return 0
	}
	return c.CategoryBiases[category]
}

// Validate checks that every tier has a usable target.
// The engine refuses to serve until this passes.
func (c *EngineConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("engine config is nil")
	}
	for _, tier := range TierNames {
		target, ok := c.Tiers[tier]
		if !ok || target.Model == "" {
			return fmt.Errorf("tier %q has no configured model", tier)
		}
	}
	return nil
}

func applyEngineDefaults(cfg *EngineConfig) {
	if cfg == nil {
		return
	}
	if cfg.PlanningBias == 0 {
		cfg.PlanningBias = 15
	}
	if cfg.ClassifierThreshold == 0 {
		cfg.ClassifierThreshold = 0.70
	}
	if cfg.HistoryWindowMinutes == 0 {
		cfg.HistoryWindowMinutes = 60
	}
}
