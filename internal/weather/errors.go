package weather

import (
	"errors"
	"fmt"
)

// ErrCityNotFound is wrapped by lookups whose geocoding returned no results.
var ErrCityNotFound = errors.New("city not found")

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LookupKind separates a domain miss from an upstream failure.
type LookupKind int

const (
	KindTransport LookupKind = iota
	KindNotFound
)

func (k LookupKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	default:
		return "transport"
	}
}

// Stage names the upstream call a lookup failed in.
type Stage string

const (
	StageGeocode  Stage = "geocode"
	StageForecast Stage = "forecast"
)

// LookupError is returned by Service.Lookup for every failure past
// validation.
type LookupError struct {
	Kind  LookupKind
	Stage Stage
	City  string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup for %q failed (%s): %v", e.Stage, e.City, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a lookup that matched no city.
func IsNotFound(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.Kind == KindNotFound
}
