package weather

import (
	"context"
	"errors"
	"fmt"
)

// Provider abstracts the upstream weather data source. Each method performs
// a single fetch; nothing is cached or retried.
type Provider interface {
	Current(ctx context.Context, city string) (Conditions, error)
	Forecast(ctx context.Context, city string, days int) ([]Conditions, error)
}

// ErrMalformedPayload is returned when the provider answers 2xx but the
// payload is missing the condition list the normalizer depends on.
var ErrMalformedPayload = errors.New("provider payload missing weather conditions")

// ProviderError is the domain-level classification of any transport or
// upstream failure. Message carries the provider's own message when the
// error body was structured JSON, else the transport's text.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather provider: %s (status %d)", e.Message, e.StatusCode)
	}
	return "weather provider: " + e.Message
}

// AsProviderError reclassifies err as a *ProviderError, preserving it when
// it already is one. Call sites apply this at the provider-call boundary so
// the mapping lives in one place.
func AsProviderError(err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return &ProviderError{Message: err.Error()}
}
