// Package weather looks up current conditions for a place name through the
// open-meteo geocoding and forecast APIs.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout     = 10 * time.Second
)

// ErrUnavailable is returned when the forecast carries no current conditions.
var ErrUnavailable = errors.New("Weather data unavailable")

// CityNotFoundError is returned when geocoding yields no location.
type CityNotFoundError struct {
	City string
}

func (e *CityNotFoundError) Error() string {
	return fmt.Sprintf("City '%s' not found", e.City)
}

// UpstreamError wraps a transport, status or decoding failure from either API.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "Weather data unavailable: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Report is the current weather for a resolved location.
type Report struct {
	City          string `json:"city"`
	Country       string `json:"country"`
	Temperature   string `json:"temperature"`
	WindSpeed     string `json:"wind_speed"`
	WindDirection string `json:"wind_direction"`
	Conditions    string `json:"conditions"`
	Coordinates   string `json:"coordinates"`
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	GeocodeURL  string
	ForecastURL string
	Timeout     time.Duration
}

// Client performs the two chained lookups. It holds no state besides its
// HTTP client, so it is safe to share.
type Client struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
}

// NewClient creates a Client with its own timeout-bounded HTTP client.
func NewClient(opts Options) *Client {
	if opts.GeocodeURL == "" {
		opts.GeocodeURL = DefaultGeocodeURL
	}
	if opts.ForecastURL == "" {
		opts.ForecastURL = DefaultForecastURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		geocodeURL:  opts.GeocodeURL,
		forecastURL: opts.ForecastURL,
		httpClient:  &http.Client{Timeout: opts.Timeout},
	}
}

type geocodeResponse struct {
	Results []location `json:"results"`
}

// Numeric fields keep their JSON text so a value like 20 renders as "20",
// and pointers so an absent field is told apart from zero.
type location struct {
	Name      *string      `json:"name"`
	Country   string       `json:"country"`
	Latitude  *json.Number `json:"latitude"`
	Longitude *json.Number `json:"longitude"`
}

type forecastResponse struct {
	CurrentWeather map[string]json.RawMessage `json:"current_weather"`
}

type currentWeather struct {
	Temperature   *json.Number `json:"temperature"`
	WindSpeed     *json.Number `json:"windspeed"`
	WindDirection *json.Number `json:"winddirection"`
	WeatherCode   *json.Number `json:"weathercode"`
}

// Current resolves city to its best geocoding match and fetches the current
// conditions there. country is accepted for the tool contract but does not
// narrow the geocoding query.
func (c *Client) Current(ctx context.Context, city, country string) (Report, error) {
	var geo geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL, url.Values{
		"name":  {city},
		"count": {"1"},
	}, &geo); err != nil {
		return Report{}, &UpstreamError{Err: err}
	}
	if len(geo.Results) == 0 {
		return Report{}, &CityNotFoundError{City: city}
	}
	loc := geo.Results[0]
	if err := requireFields(
		field{"latitude", loc.Latitude == nil},
		field{"longitude", loc.Longitude == nil},
	); err != nil {
		return Report{}, err
	}

	var fc forecastResponse
	if err := c.getJSON(ctx, c.forecastURL, url.Values{
		"latitude":        {loc.Latitude.String()},
		"longitude":       {loc.Longitude.String()},
		"current_weather": {"true"},
		"timezone":        {"auto"},
	}, &fc); err != nil {
		return Report{}, &UpstreamError{Err: err}
	}
	if len(fc.CurrentWeather) == 0 {
		return Report{}, ErrUnavailable
	}
	cw, err := decodeCurrent(fc.CurrentWeather)
	if err != nil {
		return Report{}, &UpstreamError{Err: err}
	}
	if err := requireFields(
		field{"name", loc.Name == nil},
		field{"temperature", cw.Temperature == nil},
		field{"windspeed", cw.WindSpeed == nil},
		field{"winddirection", cw.WindDirection == nil},
		field{"weathercode", cw.WeatherCode == nil},
	); err != nil {
		return Report{}, err
	}

	return Report{
		City:          *loc.Name,
		Country:       loc.Country,
		Temperature:   cw.Temperature.String() + "°C",
		WindSpeed:     cw.WindSpeed.String() + " km/h",
		WindDirection: cw.WindDirection.String() + "°",
		Conditions:    describeNumber(*cw.WeatherCode),
		Coordinates:   loc.Latitude.String() + ", " + loc.Longitude.String(),
	}, nil
}

type field struct {
	name    string
	missing bool
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.missing {
			return &UpstreamError{Err: fmt.Errorf("missing %s", f.name)}
		}
	}
	return nil
}

func decodeCurrent(raw map[string]json.RawMessage) (currentWeather, error) {
	var cw currentWeather
	b, err := json.Marshal(raw)
	if err != nil {
		return cw, err
	}
	if err := json.Unmarshal(b, &cw); err != nil {
		return cw, fmt.Errorf("decode current_weather: %w", err)
	}
	return cw, nil
}

// describeNumber maps a code that may arrive as 95 or 95.0.
func describeNumber(n json.Number) string {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f != math.Trunc(f) {
		return Describe(-1)
	}
	return Describe(int(f))
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
