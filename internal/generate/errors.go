// Package generate turns LLM output into typed domain artifacts. Each
// orchestrator action has one generation variant; responses are validated
// against a JSON Schema before they are allowed deeper into the system, and
// malformed responses surface as a typed error so callers can substitute a
// deterministic fallback artifact.
package generate

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// InvalidResponseShapeError indicates the generator returned content that
// failed schema validation or could not be parsed.
type InvalidResponseShapeError struct {
	Action Action
	Reason string
}

func (e *InvalidResponseShapeError) Error() string {
	return fmt.Sprintf("invalid response shape for %s: %s", e.Action, e.Reason)
}

// RateLimitedError indicates the gateway rejected the call for rate limiting;
// the caller may retry after a backoff.
type RateLimitedError struct {
	Action Action
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("generation rate limited for %s", e.Action)
}

// QuotaExhaustedError indicates the API quota is spent; retrying will not
// help until the quota resets.
type QuotaExhaustedError struct {
	Action Action
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("generation quota exhausted for %s", e.Action)
}

// classifyTransportError maps gateway failures onto the typed taxonomy.
// Anything unrecognized passes through wrapped.
func classifyTransportError(action Action, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 429 && strings.Contains(strings.ToLower(gerr.Message), "quota"):
			return &QuotaExhaustedError{Action: action}
		case gerr.Code == 429:
			return &RateLimitedError{Action: action}
		}
	}
	return fmt.Errorf("generation failed for %s: %w", action, err)
}
