package weather

import (
	"time"
)

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// WeatherSnapshot is the current-conditions reading for a location.
type WeatherSnapshot struct {
	Temperature   float64   `json:"temperatureC"`
	WindSpeed     float64   `json:"windSpeedKmh"`
	WindDirection float64   `json:"windDirectionDeg"`
	Time          time.Time `json:"time"` // local to the location
}

// Report is the result of a successful lookup.
type Report struct {
	Location Location        `json:"location"`
	Current  WeatherSnapshot `json:"current"`
}
