package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/chaminda360/weather-server/internal/weather"
)

// HTTPClientConfig bundles the shared outbound HTTP client. The client's
// timeout is the only resilience knob besides the circuit breaker; there
// are no retries, so every logical call issues at most one GET.
type HTTPClientConfig struct {
	Client *http.Client
}

var errNoHTTPClient = errors.New("http client not configured")

// maxErrorBody bounds how much of an error response we read while looking
// for the provider's message field.
const maxErrorBody = 1 << 16

// doRequest executes a single attempt through the circuit breaker and maps
// every transport or non-2xx failure to a *weather.ProviderError.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, &weather.ProviderError{Message: execErr.Error()}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			defer resp.Body.Close()
			return nil, decodeProviderError(resp)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.ProviderError{Message: err.Error()}
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// decodeProviderError extracts the provider's message from a structured
// error body, falling back to the HTTP status text.
func decodeProviderError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &weather.ProviderError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	return &weather.ProviderError{StatusCode: resp.StatusCode, Message: resp.Status}
}
