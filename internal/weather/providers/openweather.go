package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/chaminda360/weather-server/internal/weather"
)

// OpenWeatherClient implements the weather.Provider interface for
// OpenWeatherMap. It is stateless between calls.
type OpenWeatherClient struct {
	name    string
	apiKey  string
	baseURL string
	units   string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewOpenWeatherClient(client *http.Client, apiKey, baseURL string, logger *zap.Logger) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		units:   "metric",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: cb,
		logger:  logger,
	}
}

func (c *OpenWeatherClient) Name() string {
	return c.name
}

// Current fetches the current conditions for a city.
func (c *OpenWeatherClient) Current(ctx context.Context, city string) (weather.Conditions, error) {
	if c.apiKey == "" {
		return weather.Conditions{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", c.apiKey)
		values.Set("units", c.units)

		u := fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	c.logger.Debug("fetching current conditions", zap.String("city", city))

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return weather.Conditions{}, err
	}
	defer resp.Body.Close()

	var payload weather.Conditions
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Conditions{}, &weather.ProviderError{Message: fmt.Sprintf("decoding current weather response: %v", err)}
	}
	return payload, nil
}

// Forecast fetches days worth of 3-hour forecast entries for a city. The
// provider returns 8 entries per day, so cnt is days*8.
func (c *OpenWeatherClient) Forecast(ctx context.Context, city string, days int) ([]weather.Conditions, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("cnt", strconv.Itoa(days*weather.EntriesPerDay))
		values.Set("appid", c.apiKey)
		values.Set("units", c.units)

		u := fmt.Sprintf("%s/forecast?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	c.logger.Debug("fetching forecast", zap.String("city", city), zap.Int("days", days))

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &weather.ProviderError{Message: fmt.Sprintf("decoding forecast response: %v", err)}
	}
	return payload.List, nil
}
