package config

import "testing"

func TestCatalogResolve(t *testing.T) {
	catalog := &ModelCatalog{
		Aliases: map[string]string{
			"fast": "gpt-5.2-instant",
			"deep": "claude-opus-4-20250514",
		},
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "resolve known alias",
			input:    "fast",
			expected: "gpt-5.2-instant",
		},
		{
			name:     "resolve another alias",
			input:    "deep",
			expected: "claude-opus-4-20250514",
		},
		{
			name:     "unknown alias returns input unchanged",
			input:    "unknown-model",
			expected: "unknown-model",
		},
		{
			name:     "canonical model returns unchanged",
			input:    "gpt-5.2-instant",
			expected: "gpt-5.2-instant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := catalog.Resolve(tt.input)
			if result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCatalogResolve_Nil(t *testing.T) {
	var catalog *ModelCatalog
	if got := catalog.Resolve("fast"); got != "fast" {
		t.Errorf("Resolve on nil should return input, got %q", got)
	}
}

func TestCatalogProvider(t *testing.T) {
	catalog := DefaultCatalog()

	if p := catalog.Provider("claude-opus-4-20250514"); p != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", p)
	}
	if p := catalog.Provider("no-such-model"); p != "" {
		t.Errorf("Provider for unknown model = %q, want empty", p)
	}
}

func TestValidateEngineConfig(t *testing.T) {
	catalog := DefaultCatalog()

	if errs := catalog.ValidateEngineConfig(DefaultEngineConfig()); len(errs) != 0 {
		t.Fatalf("default engine config should validate against catalog: %v", errs)
	}

	bad := DefaultEngineConfig()
	bad.Tiers["complex"] = TierTarget{Adapter: "anthropic", Model: "made-up-model"}
	if errs := catalog.ValidateEngineConfig(bad); len(errs) == 0 {
		t.Fatal("expected validation error for unknown model")
	}

	delete(bad.Tiers, "simple")
	if errs := catalog.ValidateEngineConfig(bad); len(errs) < 2 {
		t.Fatalf("expected errors for missing tier and unknown model, got %v", errs)
	}
}
