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

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/weather"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// Open-Meteo reports local times without an offset, to the minute.
var openMeteoTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// OpenMeteoProvider implements weather.Forecaster for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Current(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current_weather", "true")
		values.Set("hourly", "temperature_2m")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.name, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.WeatherSnapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Timezone             string `json:"timezone"`
		TimezoneAbbreviation string `json:"timezone_abbreviation"`
		UTCOffsetSeconds     int    `json:"utc_offset_seconds"`
		CurrentWeather       *struct {
			Temperature   float64 `json:"temperature"`
			WindSpeed     float64 `json:"windspeed"`
			WindDirection float64 `json:"winddirection"`
			Time          string  `json:"time"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if payload.CurrentWeather == nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("forecast response has no current_weather")
	}

	zone := responseZone(payload.Timezone, payload.TimezoneAbbreviation, payload.UTCOffsetSeconds)
	ts, err := parseLocalTime(payload.CurrentWeather.Time, zone)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "openmeteo returned unparseable time; using now",
			"time", payload.CurrentWeather.Time, "error", err)
		ts = time.Now().In(zone)
	}

	return weather.WeatherSnapshot{
		Temperature:   payload.CurrentWeather.Temperature,
		WindSpeed:     payload.CurrentWeather.WindSpeed,
		WindDirection: payload.CurrentWeather.WindDirection,
		Time:          ts,
	}, nil
}

// responseZone builds the zone the response's local times are expressed in.
// The reported offset is authoritative; the name is only a label.
func responseZone(name, abbr string, offsetSeconds int) *time.Location {
	label := abbr
	if label == "" {
		label = name
	}
	if label == "" {
		label = "UTC"
	}
	return time.FixedZone(label, offsetSeconds)
}

func parseLocalTime(s string, zone *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range openMeteoTimeLayouts {
		ts, err := time.ParseInLocation(layout, s, zone)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
