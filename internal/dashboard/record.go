// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/wneessen/energy-dashboard/internal/weather"
)

// timeLayout is the local date-time format of the Open-Meteo hourly time series.
const timeLayout = "2006-01-02T15:04"

var (
	// ErrTimestamp is returned when the hourly timestamps cannot be parsed or do not strictly increase.
	ErrTimestamp = errors.New("invalid forecast timestamps")
	// ErrMisaligned is returned when the timestamps and value series differ in length.
	ErrMisaligned = errors.New("forecast series are not aligned")
)

// Simulator derives a demand series from aligned temperature and wind speed series.
type Simulator interface {
	Simulate(temperatures, windspeeds []float64) ([]float64, error)
}

// Record is the aligned data of one location. All series share the same length and index i
// of each series refers to the hour Times[i].
type Record struct {
	Location     weather.Location
	Times        []time.Time
	Temperatures []float64
	WindSpeeds   []float64
	Demand       []float64
}

// Len returns the number of hours in the record.
func (r *Record) Len() int {
	return len(r.Times)
}

// Assemble truncates the raw series to the first horizon hours, parses the timestamps and
// derives the demand series. A forecast shorter than horizon is kept at its own length.
// On error no record is returned.
func Assemble(loc weather.Location, raw *weather.RawForecast, horizon int, sim Simulator) (*Record, error) {
	if raw == nil {
		return nil, fmt.Errorf("no forecast for %s", loc.Name)
	}
	if sim == nil {
		return nil, fmt.Errorf("no demand simulator")
	}

	rawTimes := head(raw.Times, horizon)
	temperatures := head(raw.Temperatures, horizon)
	windspeeds := head(raw.WindSpeeds, horizon)
	if len(rawTimes) != len(temperatures) {
		return nil, fmt.Errorf("%w: %d timestamps for %d values", ErrMisaligned, len(rawTimes), len(temperatures))
	}

	times, err := parseTimes(rawTimes, zone(raw.Timezone, raw.UTCOffsetSeconds))
	if err != nil {
		return nil, err
	}
	demand, err := sim.Simulate(temperatures, windspeeds)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate demand for %s: %w", loc.Name, err)
	}

	return &Record{
		Location:     loc,
		Times:        times,
		Temperatures: temperatures,
		WindSpeeds:   windspeeds,
		Demand:       demand,
	}, nil
}

// head returns a copy of the first n elements of s, or all of s if it is shorter.
func head[T any](s []T, n int) []T {
	n = max(0, min(n, len(s)))
	return slices.Clone(s[:n])
}

// zone returns the named IANA zone, or a fixed zone for offset if the name is empty or
// unknown.
func zone(name string, offset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if offset != 0 {
		return time.FixedZone("", offset)
	}
	return time.UTC
}

// parseTimes parses the provider timestamps and requires them to strictly increase. RFC 3339
// instants are converted into loc, local date-times are read as wall clock in loc.
func parseTimes(values []string, loc *time.Location) ([]time.Time, error) {
	times := make([]time.Time, len(values))
	for i, val := range values {
		t, err := time.Parse(time.RFC3339, val)
		if err == nil {
			t = t.In(loc)
		} else if t, err = time.ParseInLocation(timeLayout, val, loc); err != nil {
			return nil, fmt.Errorf("%w: unparseable timestamp %q at index %d", ErrTimestamp, val, i)
		}
		if i > 0 && !t.After(times[i-1]) {
			return nil, fmt.Errorf("%w: %q at index %d does not follow %s", ErrTimestamp, val, i,
				times[i-1].Format(time.RFC3339))
		}
		times[i] = t
	}
	return times, nil
}
