package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports an empty or whitespace-only query. Non-retryable;
// the caller should re-prompt upstream.
var ErrInvalidInput = errors.New("query text is empty")

// ConfigError reports an incomplete tier-to-model mapping. Detected at
// engine construction, never per request.
type ConfigError struct {
	Tier string
	Err  error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "engine config error"
	}
	if e.Err != nil {
		return fmt.Sprintf("engine config: %v", e.Err)
	}
	return fmt.Sprintf("engine config: no model configured for tier %q", e.Tier)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
