package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel reasons for single-provider fetches. Wrapped in a ProviderError so
// callers can both errors.Is the cause and read the provider name.
var (
	ErrNotConfigured   = errors.New("provider not configured")
	ErrRateLimited     = errors.New("provider rate limited")
	ErrUnknown         = errors.New("unknown provider")
	ErrOddsUnsupported = errors.New("provider does not serve odds")
	ErrNoData          = errors.New("provider returned no data")
)

// ProviderError wraps an upstream failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderFailure records why one provider could not serve a request during a
// fallback pass.
type ProviderFailure struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// ExhaustionError is returned when every candidate provider was tried and none
// produced data. The message enumerates each provider's reason so operators
// can tell a quota problem from an outage at a glance.
type ExhaustionError struct {
	Operation string
	Subject   string // date or fixture id, depending on the operation
	Failures  []ProviderFailure
}

func (e *ExhaustionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all providers exhausted for %s %s", e.Operation, e.Subject)
	for i, f := range e.Failures {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f.Provider)
		b.WriteString(": ")
		b.WriteString(f.Reason)
	}
	return b.String()
}
