package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/chaminda360/weather-server/internal/weather"
)

const currentBody = `{"main":{"temp":21.5,"humidity":60},"weather":[{"description":"clear sky"}],"wind":{"speed":3.1}}`

func TestCurrentRequestAndDecode(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(currentBody)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer ts.Close()

	c := NewOpenWeatherClient(ts.Client(), "test-key", ts.URL, zap.NewNop())

	raw, err := c.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/weather" {
		t.Errorf("expected path /weather, got %q", gotPath)
	}
	if gotQuery.Get("q") != "Paris" {
		t.Errorf("expected q=Paris, got %q", gotQuery.Get("q"))
	}
	if gotQuery.Get("appid") != "test-key" {
		t.Errorf("expected appid=test-key, got %q", gotQuery.Get("appid"))
	}
	if gotQuery.Get("units") != "metric" {
		t.Errorf("expected units=metric, got %q", gotQuery.Get("units"))
	}

	if raw.Main.Temp != 21.5 {
		t.Errorf("expected temp 21.5, got %v", raw.Main.Temp)
	}
	if len(raw.Weather) != 1 || raw.Weather[0].Description != "clear sky" {
		t.Errorf("unexpected weather list: %+v", raw.Weather)
	}
	if raw.Wind.Speed != 3.1 {
		t.Errorf("expected wind speed 3.1, got %v", raw.Wind.Speed)
	}
}

func TestForecastEntryCount(t *testing.T) {
	var gotQuery url.Values

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("expected path /forecast, got %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()

		resp := weather.ForecastResponse{}
		for i := 0; i < 24; i++ {
			resp.List = append(resp.List, weather.Conditions{
				Main:    weather.MainMetrics{Temp: 20},
				Weather: []weather.Condition{{Description: "scattered clouds"}},
			})
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}))
	defer ts.Close()

	c := NewOpenWeatherClient(ts.Client(), "test-key", ts.URL, zap.NewNop())

	entries, err := c.Forecast(context.Background(), "Paris", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 days at 3-hour granularity is 24 entries.
	if gotQuery.Get("cnt") != "24" {
		t.Errorf("expected cnt=24, got %q", gotQuery.Get("cnt"))
	}
	if len(entries) != 24 {
		t.Errorf("expected 24 entries, got %d", len(entries))
	}
}

func TestProviderErrorSurfacesMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"cod":"404","message":"city not found"}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer ts.Close()

	c := NewOpenWeatherClient(ts.Client(), "test-key", ts.URL, zap.NewNop())

	_, err := c.Current(context.Background(), "Nowhere")
	var pe *weather.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *weather.ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", pe.StatusCode)
	}
	if pe.Message != "city not found" {
		t.Errorf("expected provider message %q, got %q", "city not found", pe.Message)
	}
}

func TestProviderErrorFallsBackToStatusText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		if _, err := w.Write([]byte("upstream exploded")); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer ts.Close()

	c := NewOpenWeatherClient(ts.Client(), "test-key", ts.URL, zap.NewNop())

	_, err := c.Forecast(context.Background(), "Paris", 3)
	var pe *weather.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *weather.ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", pe.StatusCode)
	}
	if pe.Message == "" {
		t.Error("expected non-empty fallback message")
	}
}

func TestTransportErrorMapped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	c := NewOpenWeatherClient(http.DefaultClient, "test-key", ts.URL, zap.NewNop())

	_, err := c.Current(context.Background(), "Paris")
	var pe *weather.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *weather.ProviderError, got %v", err)
	}
	if pe.StatusCode != 0 {
		t.Errorf("transport failures carry no HTTP status, got %d", pe.StatusCode)
	}
	if pe.Message == "" {
		t.Error("expected transport error text in message")
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := NewOpenWeatherClient(http.DefaultClient, "", "https://api.openweathermap.org/data/2.5", zap.NewNop())

	if _, err := c.Current(context.Background(), "Paris"); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := c.Forecast(context.Background(), "Paris", 3); err == nil {
		t.Error("expected error for missing api key")
	}
}
