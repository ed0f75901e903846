package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/metrics"
)

// Service resolves a city and fetches its current conditions.
type Service struct {
	geocoder   Geocoder
	forecaster Forecaster
}

// NewService creates a new Service.
func NewService(geocoder Geocoder, forecaster Forecaster) *Service {
	return &Service{
		geocoder:   geocoder,
		forecaster: forecaster,
	}
}

// Lookup geocodes city, takes the first candidate and fetches current
// weather for it. Failures past validation are *LookupError.
func (s *Service) Lookup(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, &ValidationError{Field: "city", Reason: "must not be empty"}
	}

	start := time.Now()
	report, err := s.lookup(ctx, city)
	metrics.ObserveLookup(lookupOutcome(err), time.Since(start))
	return report, err
}

func (s *Service) lookup(ctx context.Context, city string) (Report, error) {
	logging.FromContext(ctx).DebugContext(ctx, "geocoding city", "city", city, "provider", s.geocoder.Name())

	candidates, err := s.geocoder.Search(ctx, city)
	if err != nil {
		return Report{}, &LookupError{Kind: KindTransport, Stage: StageGeocode, City: city, Err: err}
	}
	if len(candidates) == 0 {
		return Report{}, &LookupError{Kind: KindNotFound, Stage: StageGeocode, City: city, Err: ErrCityNotFound}
	}
	loc := candidates[0]

	current, err := s.forecaster.Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Report{}, &LookupError{
			Kind:  KindTransport,
			Stage: StageForecast,
			City:  city,
			Err:   fmt.Errorf("%s at %.4f,%.4f: %w", s.forecaster.Name(), loc.Latitude, loc.Longitude, err),
		}
	}

	return Report{Location: loc, Current: current}, nil
}

func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
