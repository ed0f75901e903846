package weather

import (
	"context"
)

// Geocoder resolves a city name to candidate locations, best match first.
// An empty slice with a nil error means nothing matched.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, city string) ([]Location, error)
}

// Forecaster fetches current conditions for a coordinate pair.
type Forecaster interface {
	Name() string
	Current(ctx context.Context, lat, lon float64) (WeatherSnapshot, error)
}
