package tools

import (
	"context"
	"errors"

	"github.com/toolchat/toolchat/internal/schema"
	"github.com/toolchat/toolchat/internal/weather"
)

// WeatherLookup resolves a place name to its current conditions.
type WeatherLookup interface {
	Current(ctx context.Context, city, country string) (weather.Report, error)
}

// WeatherTool answers get_weather through a WeatherLookup.
type WeatherTool struct {
	lookup WeatherLookup
}

// NewWeatherTool creates a WeatherTool.
func NewWeatherTool(lookup WeatherLookup) *WeatherTool {
	return &WeatherTool{lookup: lookup}
}

func (t *WeatherTool) Descriptor() schema.ToolDescriptor {
	return schema.ToolDescriptor{
		Name:        string(ToolGetWeather),
		Description: "Get current weather information for a city",
		Params: []schema.Param{
			{Name: "city", Type: "string", Description: "The city name", Required: true},
			{Name: "country", Type: "string", Description: "The country (optional)"},
		},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args schema.ToolArgs) schema.ToolResult {
	country, _ := args.Optional("country")
	report, err := t.lookup.Current(ctx, args.String("city"), country)
	if err != nil {
		return weatherError(err)
	}
	return schema.ToolResult{
		"city":           report.City,
		"country":        report.Country,
		"temperature":    report.Temperature,
		"wind_speed":     report.WindSpeed,
		"wind_direction": report.WindDirection,
		"conditions":     report.Conditions,
		"coordinates":    report.Coordinates,
	}
}

func weatherError(err error) schema.ToolResult {
	var notFound *weather.CityNotFoundError
	var upstream *weather.UpstreamError
	switch {
	case errors.As(err, &notFound):
		return schema.ErrorResult(notFound.Error())
	case errors.As(err, &upstream):
		return schema.ErrorResult(upstream.Error())
	case errors.Is(err, weather.ErrUnavailable):
		return schema.ErrorResult(weather.ErrUnavailable.Error())
	default:
		return schema.ErrorResult("Weather data unavailable: " + err.Error())
	}
}
