package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.PlanningBias != 15 {
		t.Errorf("PlanningBias = %v, want 15", cfg.PlanningBias)
	}
	if cfg.ClassifierThreshold != 0.70 {
		t.Errorf("ClassifierThreshold = %v, want 0.70", cfg.ClassifierThreshold)
	}
	if cfg.HistoryWindowMinutes != 60 {
		t.Errorf("HistoryWindowMinutes = %v, want 60", cfg.HistoryWindowMinutes)
	}

	for _, tier := range TierNames {
		target, ok := cfg.Target(tier)
		if !ok || target.Model == "" || target.Adapter == "" {
			t.Errorf("tier %q missing target: %+v", tier, target)
		}
	}
}

func TestLoadEngineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routing.yaml")
	data := []byte(`tiers:
  simple:
    adapter: openai
    model: gpt-5.2-instant
  medium:
    adapter: anthropic
    model: claude-sonnet-4-20250514
  complex:
    adapter: anthropic
    model: claude-opus-4-20250514
category_biases:
  coding: 12
planning_bias: 20
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadEngineConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.CategoryBias("coding") != 12 {
		t.Errorf("coding bias = %v, want 12", cfg.CategoryBias("coding"))
	}
	if cfg.PlanningBias != 20 {
		t.Errorf("PlanningBias = %v, want 20", cfg.PlanningBias)
	}
	// Defaults still applied for unset fields
	if cfg.ClassifierThreshold != 0.70 {
		t.Errorf("ClassifierThreshold = %v, want default 0.70", cfg.ClassifierThreshold)
	}
}

func TestEngineConfigValidate_MissingTier(t *testing.T) {
	cfg := &EngineConfig{
		Tiers: map[string]TierTarget{
			"simple": {Adapter: "openai", Model: "gpt-5.2-instant"},
			"medium": {Adapter: "anthropic", Model: "claude-sonnet-4-20250514"},
		},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing complex tier")
	}
}

func TestEngineConfigValidate_EmptyModel(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Tiers["medium"] = TierTarget{Adapter: "anthropic"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty model")
	}
}

func TestCategoryBias_UnknownCategory(t *testing.T) {
	cfg := DefaultEngineConfig()
	if bias := cfg.CategoryBias("unknown"); bias != 0 {
		t.Errorf("unknown category bias = %v, want 0", bias)
	}
}
