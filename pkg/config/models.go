package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ModelCatalog manages model alias resolution and provider validation.
type ModelCatalog struct {
	Aliases   map[string]string   `yaml:"aliases"`
	Providers map[string][]string `yaml:"providers"`
}

// LoadCatalog reads a model catalog from a YAML file.
func LoadCatalog(path string) (*ModelCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog ModelCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}

	if catalog.Aliases == nil {
		catalog.Aliases = make(map[string]string)
	}
	if catalog.Providers == nil {
		catalog.Providers = make(map[string][]string)
	}

	return &catalog, nil
}

// LoadCatalogWithFallback loads the catalog from the user config dir, falling
// back to the provided default path, then to the built-in catalog.
func LoadCatalogWithFallback(defaultPath string) (*ModelCatalog, error) {
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".autoroute", "models.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return LoadCatalog(userPath)
		}
	}

	if defaultPath != "" {
		if _, err := os.Stat(defaultPath); err == nil {
			return LoadCatalog(defaultPath)
		}
	}

	return DefaultCatalog(), nil
}

// Resolve returns the canonical model name for an alias.
// If the input is not an alias, it returns the input unchanged.
func (c *ModelCatalog) Resolve(modelOrAlias string) string {
	if c == nil || c.Aliases == nil {
		return modelOrAlias
	}
	if canonical, ok := c.Aliases[modelOrAlias]; ok {
		return canonical
	}
	return modelOrAlias
}

// IsAlias returns true if the given string is a known alias.
func (c *ModelCatalog) IsAlias(name string) bool {
	if c == nil || c.Aliases == nil {
		return false
	}
	_, ok := c.Aliases[name]
	return ok
}

// Provider returns the provider name for a canonical model, or "".
func (c *ModelCatalog) Provider(model string) string {
	if c == nil || c.Providers == nil {
		return ""
	}
	for provider, models := range c.Providers {
		for _, m := range models {
			if m == model {
				return provider
			}
		}
	}
	return ""
}

// Models returns the models for a given provider.
func (c *ModelCatalog) Models(provider string) []string {
	if c == nil || c.Providers == nil {
		return nil
	}
	return c.Providers[provider]
}

// ListProviders returns a sorted list of provider names.
func (c *ModelCatalog) ListProviders() []string {
	if c == nil || c.Providers == nil {
		return nil
	}
	providers := make([]string, 0, len(c.Providers))
	for p := range c.Providers {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

// ValidateModel checks if a model exists in the provider's list.
func (c *ModelCatalog) ValidateModel(provider, model string) error {
	if c == nil || c.Providers == nil {
		return nil // No validation possible without provider info
	}

	models, ok := c.Providers[provider]
	if !ok {
		return fmt.Errorf("unknown provider %q", provider)
	}

	for _, m := range models {
		if m == model {
			return nil
		}
	}

	return fmt.Errorf("model %q not in %s provider list", model, provider)
}

// ValidateEngineConfig checks that every tier target resolves to a valid
// provider model. Returns a slice of validation errors (empty if all valid).
func (c *ModelCatalog) ValidateEngineConfig(cfg *EngineConfig) []error {
	if c == nil || cfg == nil {
		return nil
	}

	var errs []error
	for _, tier := range TierNames {
		target, ok := cfg.Tiers[tier]
		if !ok {
			errs = append(errs, fmt.Errorf("tier %q: no target configured", tier))
			continue
		}
		model := c.Resolve(target.Model)
		if err := c.ValidateModel(target.Adapter, model); err != nil {
			errs = append(errs, fmt.Errorf("tier %q: %w", tier, err))
		}
	}
	return errs
}

// DefaultCatalog returns the built-in model catalog.
func DefaultCatalog() *ModelCatalog {
	return &ModelCatalog{
		Aliases: map[string]string{
			// OpenAI
			"fast":     "gpt-5.2-instant",
			"thinking": "gpt-5.2-thinking",
			// Anthropic
			"quality": "claude-sonnet-4-20250514",
			"deep":    "claude-opus-4-20250514",
			// Google
			"research": "gemini-2.0-pro",
			// DeepSeek
			"cheap":  "deepseek-chat",
			"reason": "deepseek-reasoner",
		},
		Providers: map[string][]string{
			"anthropic": {"claude-sonnet-4-20250514", "claude-opus-4-20250514"},
			"openai":    {"gpt-5.2-instant", "gpt-5.2-thinking", "gpt-5.2-pro"},
			"google":    {"gemini-2.0-pro"},
			"deepseek":  {"deepseek-chat", "deepseek-reasoner"},
		},
	}
}
