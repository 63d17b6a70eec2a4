package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed lookup for the presentation layer.
type ErrorKind string

const (
	KindEmptyQuery  ErrorKind = "empty_query"
	KindNotReady    ErrorKind = "not_ready"
	KindNotFound    ErrorKind = "not_found"
	KindUnavailable ErrorKind = "unavailable"
)

var (
	ErrEmptyQuery  = errors.New("empty query")
	ErrNotReady    = errors.New("weather data not loaded yet")
	ErrNotFound    = errors.New("city not found")
	ErrUnavailable = errors.New("weather data unavailable")

	// ErrLoadAttempted is returned by Service.Load after the first call.
	ErrLoadAttempted = errors.New("weather data load already attempted")
)

// LoadFailureMessage is shown once when the dataset could not be loaded.
const LoadFailureMessage = "An error occurred while loading data."

// LookupError is the user-facing failure of a lookup.
// Its Error text is meant to be shown to the user as is.
type LookupError struct {
	Kind ErrorKind
	// City is the normalized query, set for KindNotFound.
	City string
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindEmptyQuery:
		return "Please enter a city name."
	case KindNotReady:
		return "Data has not loaded yet. Please wait..."
	case KindNotFound:
		return fmt.Sprintf("No data found for \"%s\". Please try a different city.", e.City)
	case KindUnavailable:
		return "Weather data is unavailable: " + LoadFailureMessage
	default:
		return string(e.Kind)
	}
}

// Is matches the sentinel of the error's kind.
func (e *LookupError) Is(target error) bool {
	switch e.Kind {
	case KindEmptyQuery:
		return target == ErrEmptyQuery
	case KindNotReady:
		return target == ErrNotReady
	case KindNotFound:
		return target == ErrNotFound
	case KindUnavailable:
		return target == ErrUnavailable
	}
	return false
}

// DataLoadError reports a failed dataset load.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load weather data from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
