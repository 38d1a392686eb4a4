// Package mcpserver assembles the MCP surface: one resource exposing the
// default city's current weather and one get_forecast tool. Every handler
// is a single-shot transform of request to response; nothing is shared or
// cached between calls.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/chaminda360/weather-server/internal/config"
	"github.com/chaminda360/weather-server/internal/weather"
)

const (
	serverName    = "weather-server"
	serverVersion = "0.1.0"

	toolGetForecast  = "get_forecast"
	resourceMIMEType = "application/json"
)

// Server wires the weather provider behind the MCP protocol boundary.
type Server struct {
	provider    weather.Provider
	logger      *zap.Logger
	defaultCity string
	mcp         *mcp.Server
}

func New(cfg *config.AppConfig, provider weather.Provider, logger *zap.Logger) *Server {
	s := &Server{
		provider:    provider,
		logger:      logger,
		defaultCity: cfg.DefaultCity,
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	srv.AddResource(&mcp.Resource{
		URI:         s.resourceURI(),
		Name:        fmt.Sprintf("Current weather in %s", s.defaultCity),
		Description: "Real-time weather data including temperature, conditions, humidity, and wind speed",
		MIMEType:    resourceMIMEType,
	}, s.readCurrentWeather)

	// Unknown tool names are rejected at dispatch; only get_forecast exists.
	srv.AddTool(&mcp.Tool{
		Name:        toolGetForecast,
		Description: "Get multi-day weather forecast for a city",
		InputSchema: forecastInputSchema(),
	}, s.callGetForecast)

	s.mcp = srv
	return s
}

// Run serves the protocol over stdio until ctx is cancelled or the
// orchestrator closes the stream.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Underlying exposes the SDK server for alternate transports and tests.
func (s *Server) Underlying() *mcp.Server {
	return s.mcp
}

func (s *Server) resourceURI() string {
	return fmt.Sprintf("weather://%s/current", s.defaultCity)
}

func forecastInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"city": {
				Type:        "string",
				Description: "City name",
			},
			"days": {
				Type:        "number",
				Description: "Number of days (1-5)",
				Minimum:     f64(1),
				Maximum:     f64(weather.MaxForecastDays),
			},
		},
		Required: []string{"city"},
	}
}

func f64(v float64) *float64 { return &v }

// readCurrentWeather handles reads of the advertised resource. Failures
// here are protocol-level errors terminating the single request.
func (s *Server) readCurrentWeather(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := s.resourceURI()
	if req.Params.URI != uri {
		return nil, fmt.Errorf("unknown resource: %s", req.Params.URI)
	}

	raw, err := s.provider.Current(ctx, s.defaultCity)
	if err != nil {
		return nil, weather.AsProviderError(err)
	}

	snapshot, err := weather.ToSnapshot(raw, time.Now().UTC())
	if err != nil {
		// Empty condition list and friends are upstream defects, not ours.
		return nil, weather.AsProviderError(err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: resourceMIMEType,
			Text:     string(data),
		}},
	}, nil
}

// callGetForecast handles get_forecast invocations. Malformed arguments
// fail before any network call; provider failures come back as a
// successful result flagged IsError so orchestrators can tell a failing
// tool from a failing protocol exchange.
func (s *Server) callGetForecast(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args map[string]any
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return nil, fmt.Errorf("invalid forecast arguments: %w", err)
		}
	}

	fr, err := weather.ParseForecastArgs(args)
	if err != nil {
		return nil, fmt.Errorf("invalid forecast arguments: %w", err)
	}

	entries, err := s.provider.Forecast(ctx, fr.City, fr.Days)
	var forecast []weather.ForecastEntry
	if err == nil {
		forecast, err = weather.ToForecastDays(entries, time.Now().UTC())
	}
	if err != nil {
		pe := weather.AsProviderError(err)
		s.logger.Warn("forecast fetch failed",
			zap.String("city", fr.City),
			zap.Int("days", fr.Days),
			zap.Error(pe))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Weather API error: %s", pe.Message)},
			},
		}, nil
	}

	data, err := json.MarshalIndent(forecast, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}
