// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package weather defines the forecast source abstraction and the raw hourly data it returns.
package weather

import (
	"context"
	"fmt"
)

const (
	// MetricTemperature is the Open-Meteo name of the 2m air temperature variable.
	MetricTemperature = "temperature_2m"
	// MetricWindSpeed is the Open-Meteo name of the 10m wind speed variable.
	MetricWindSpeed = "wind_speed_10m"

	// DefaultForecastHours is the default number of leading hourly values kept per location.
	DefaultForecastHours = 24
	// ForecastDays is the number of forecast days requested from the provider.
	ForecastDays = 1
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location, params Parameters) (*RawForecast, error)
}

// Location is a named, fixed geographic position.
type Location struct {
	Name string
	Coordinate
}

// Parameters describes what is requested for every location.
type Parameters struct {
	HourlyMetrics []string
	Hours         int
	Timezone      string
}

// DefaultParameters returns the temperature and wind speed request with the given horizon.
func DefaultParameters(hours int) Parameters {
	return Parameters{
		HourlyMetrics: []string{MetricTemperature, MetricWindSpeed},
		Hours:         hours,
	}
}

// RawForecast holds the provider's hourly arrays as returned, without truncation. Times are
// either RFC 3339 instants or local date-time strings. Timezone names the IANA zone the series
// is presented in; UTCOffsetSeconds is the fallback when that zone cannot be loaded.
type RawForecast struct {
	Times            []string
	Temperatures     []float64
	WindSpeeds       []float64
	Timezone         string
	UTCOffsetSeconds int
}

// Len returns the length shared by all series, or -1 if they differ.
func (r *RawForecast) Len() int {
	n := len(r.Times)
	if len(r.Temperatures) != n || len(r.WindSpeeds) != n {
		return -1
	}
	return n
}

// Validate checks that the hourly series are present and of equal length.
func (r *RawForecast) Validate() error {
	if r.Times == nil {
		return fmt.Errorf("missing hourly field %q", "time")
	}
	if r.Temperatures == nil {
		return fmt.Errorf("missing hourly field %q", MetricTemperature)
	}
	if r.WindSpeeds == nil {
		return fmt.Errorf("missing hourly field %q", MetricWindSpeed)
	}
	if r.Len() < 0 {
		return fmt.Errorf("hourly series length mismatch: time=%d %s=%d %s=%d", len(r.Times),
			MetricTemperature, len(r.Temperatures), MetricWindSpeed, len(r.WindSpeeds))
	}
	return nil
}

// FetchError reports a failed forecast retrieval for a single location.
type FetchError struct {
	Location string
	Err      error
}

// NewFetchError wraps err for the named location.
func NewFetchError(location string, err error) *FetchError {
	return &FetchError{Location: location, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch forecast for %s: %s", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
