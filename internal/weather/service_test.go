package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-widget/internal/weather"
)

// ---- Fakes ----

type fakeGeocoder struct {
	searchFn func(ctx context.Context, city string) ([]weather.Location, error)
	calls    int
}

func (f *fakeGeocoder) Name() string { return "fake-geocoder" }
func (f *fakeGeocoder) Search(ctx context.Context, city string) ([]weather.Location, error) {
	f.calls++
	if f.searchFn != nil {
		return f.searchFn(ctx, city)
	}
	return nil, nil
}

type fakeForecaster struct {
	currentFn func(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error)
	calls     int
}

func (f *fakeForecaster) Name() string { return "fake-forecaster" }
func (f *fakeForecaster) Current(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
	f.calls++
	if f.currentFn != nil {
		return f.currentFn(ctx, lat, lon)
	}
	return weather.WeatherSnapshot{}, nil
}

var telAviv = weather.Location{Name: "Tel Aviv", Country: "Israel", Latitude: 32.08, Longitude: 34.78}

// ---- Tests ----

func TestLookupSuccessUsesFirstCandidate(t *testing.T) {
	geo := &fakeGeocoder{searchFn: func(ctx context.Context, city string) ([]weather.Location, error) {
		if city != "Tel Aviv" {
			t.Fatalf("expected trimmed city, got %q", city)
		}
		return []weather.Location{telAviv, {Name: "Tel Aviv", Country: "Elsewhere", Latitude: 1, Longitude: 2}}, nil
	}}
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("IDT", 3*3600))
	fc := &fakeForecaster{currentFn: func(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
		if lat != 32.08 || lon != 34.78 {
			t.Fatalf("unexpected coordinates %v,%v", lat, lon)
		}
		return weather.WeatherSnapshot{Temperature: 25, WindSpeed: 10, WindDirection: 180, Time: ts}, nil
	}}

	svc := weather.NewService(geo, fc)
	report, err := svc.Lookup(context.Background(), "  Tel Aviv ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Location != telAviv {
		t.Fatalf("location = %+v, want %+v", report.Location, telAviv)
	}
	if report.Current.Temperature != 25 || !report.Current.Time.Equal(ts) {
		t.Fatalf("unexpected snapshot %+v", report.Current)
	}
}

func TestLookupEmptyCityMakesNoCalls(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		geo := &fakeGeocoder{}
		fc := &fakeForecaster{}
		svc := weather.NewService(geo, fc)

		_, err := svc.Lookup(context.Background(), in)
		var verr *weather.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Lookup(%q): expected ValidationError, got %v", in, err)
		}
		if geo.calls != 0 || fc.calls != 0 {
			t.Fatalf("Lookup(%q): expected no upstream calls, got geo=%d forecast=%d", in, geo.calls, fc.calls)
		}
	}
}

func TestLookupNotFound(t *testing.T) {
	geo := &fakeGeocoder{searchFn: func(ctx context.Context, city string) ([]weather.Location, error) {
		return []weather.Location{}, nil
	}}
	fc := &fakeForecaster{}

	_, err := weather.NewService(geo, fc).Lookup(context.Background(), "Atlantis")
	if !errors.Is(err, weather.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
	if !weather.IsNotFound(err) {
		t.Fatal("expected IsNotFound to be true")
	}
	if fc.calls != 0 {
		t.Fatalf("forecast should not be called, got %d calls", fc.calls)
	}
}

func TestLookupTransportFailures(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name      string
		geo       *fakeGeocoder
		fc        *fakeForecaster
		wantStage weather.Stage
	}{
		{
			name: "geocoding",
			geo: &fakeGeocoder{searchFn: func(ctx context.Context, city string) ([]weather.Location, error) {
				return nil, boom
			}},
			fc:        &fakeForecaster{},
			wantStage: weather.StageGeocode,
		},
		{
			name: "forecast",
			geo: &fakeGeocoder{searchFn: func(ctx context.Context, city string) ([]weather.Location, error) {
				return []weather.Location{telAviv}, nil
			}},
			fc: &fakeForecaster{currentFn: func(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
				return weather.WeatherSnapshot{}, boom
			}},
			wantStage: weather.StageForecast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := weather.NewService(tt.geo, tt.fc).Lookup(context.Background(), "Tel Aviv")

			var le *weather.LookupError
			if !errors.As(err, &le) {
				t.Fatalf("expected LookupError, got %v", err)
			}
			if le.Kind != weather.KindTransport {
				t.Fatalf("kind = %s, want transport", le.Kind)
			}
			if le.Stage != tt.wantStage {
				t.Fatalf("stage = %s, want %s", le.Stage, tt.wantStage)
			}
			if !errors.Is(err, boom) {
				t.Fatalf("expected wrapped cause, got %v", err)
			}
			if weather.IsNotFound(err) {
				t.Fatal("transport failure must not report not found")
			}
		})
	}
}
