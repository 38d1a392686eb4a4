package weather

import (
	"errors"
	"strings"
)

const (
	// DefaultForecastDays is used when days is absent or non-positive.
	DefaultForecastDays = 3
	// MaxForecastDays caps how many days a single request may ask for.
	MaxForecastDays = 5
)

var (
	errArgsNotObject = errors.New("arguments must be an object")
	errCityMissing   = errors.New(`missing required argument "city"`)
	errCityNotString = errors.New(`argument "city" must be a string`)
	errCityEmpty     = errors.New(`argument "city" must not be empty`)
	errDaysNotNumber = errors.New(`argument "days" must be a number`)
)

// ParseForecastArgs structurally checks an untyped tool-argument value and
// produces a clamped ForecastRequest. No coercion is performed: a numeric
// string in days is rejected. This is the sole gate in front of the
// provider on the tool path, so it must fail before any network call.
func ParseForecastArgs(args map[string]any) (ForecastRequest, error) {
	if args == nil {
		return ForecastRequest{}, errArgsNotObject
	}

	cityVal, ok := args["city"]
	if !ok {
		return ForecastRequest{}, errCityMissing
	}
	city, ok := cityVal.(string)
	if !ok {
		return ForecastRequest{}, errCityNotString
	}
	if strings.TrimSpace(city) == "" {
		return ForecastRequest{}, errCityEmpty
	}

	req := ForecastRequest{City: city, Days: DefaultForecastDays}
	if daysVal, ok := args["days"]; ok {
		// JSON numbers decode to float64.
		n, ok := daysVal.(float64)
		if !ok {
			return ForecastRequest{}, errDaysNotNumber
		}
		req.Days = int(n)
	}

	return req.Clamped(), nil
}

// Clamped bounds Days to [1, MaxForecastDays]; non-positive values fall
// back to the default so the provider is never asked for zero entries.
func (r ForecastRequest) Clamped() ForecastRequest {
	if r.Days > MaxForecastDays {
		r.Days = MaxForecastDays
	}
	if r.Days <= 0 {
		r.Days = DefaultForecastDays
	}
	return r
}
