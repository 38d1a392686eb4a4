// Package httpapi is an optional debug surface mirroring what the MCP
// handlers return, for local inspection with curl. It shares the provider
// client, validator and normalizer with the protocol path.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/chaminda360/weather-server/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, provider weather.Provider, defaultCity string) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q := currentQuery{City: c.Query("city", defaultCity)}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		raw, err := provider.Current(c.Context(), q.City)
		if err != nil {
			return providerStatusError(err)
		}

		snapshot, err := weather.ToSnapshot(raw, time.Now().UTC())
		if err != nil {
			return providerStatusError(err)
		}
		return c.JSON(snapshot)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		req := weather.ForecastRequest{City: q.City, Days: q.Days}.Clamped()

		entries, err := provider.Forecast(c.Context(), req.City, req.Days)
		if err != nil {
			return providerStatusError(err)
		}

		forecast, err := weather.ToForecastDays(entries, time.Now().UTC())
		if err != nil {
			return providerStatusError(err)
		}

		return c.JSON(fiber.Map{
			"city":     req.City,
			"days":     req.Days,
			"forecast": forecast,
		})
	})
}

// currentQuery holds query parameters for the current-weather endpoint.
type currentQuery struct {
	City string `validate:"required"`
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	City string `validate:"required"`
	Days int
}

func (q *forecastQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")
	q.Days = weather.DefaultForecastDays

	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
		}
		q.Days = days
	}

	return validate.Struct(q)
}

// providerStatusError maps a provider failure to an HTTP status: upstream
// 4xx codes pass through, everything else reads as a bad gateway.
func providerStatusError(err error) error {
	pe := weather.AsProviderError(err)
	code := fiber.StatusBadGateway
	if pe.StatusCode >= http.StatusBadRequest && pe.StatusCode < http.StatusInternalServerError {
		code = pe.StatusCode
	}
	return fiber.NewError(code, pe.Message)
}
