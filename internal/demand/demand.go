// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package demand derives a synthetic energy demand series from hourly temperature and wind speed.
//
// The model is linear: higher temperatures raise cooling load, higher wind speeds lower it, and
// every hour gets independent uniform noise:
//
//	demand = BaseLoad + TempCoeff*temperature + WindCoeff*windspeed + noise
package demand

import (
	"fmt"
)

const (
	// BaseLoad is the baseline load in MW.
	BaseLoad = 50.0
	// TempCoeff is the demand change in MW per degree.
	TempCoeff = 0.9
	// WindCoeff is the demand change in MW per unit of wind speed.
	WindCoeff = -0.3
	// DefaultNoiseBound is the half-width of the uniform noise interval.
	DefaultNoiseBound = 3.0
)

// RandomSource yields uniformly distributed values.
type RandomSource interface {
	// Uniform returns a value in the interval [lo, hi].
	Uniform(lo, hi float64) float64
}

// InvalidInputError is returned when the temperature and wind speed series are not aligned.
type InvalidInputError struct {
	Temperatures int
	Windspeeds   int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("temperature and wind speed series differ in length: %d != %d",
		e.Temperatures, e.Windspeeds)
}

// Simulator maps temperature and wind speed series to demand. It keeps no state between calls
// apart from its random source.
type Simulator struct {
	source RandomSource
	bound  float64
}

// NewSimulator returns a Simulator drawing noise from source within [-bound, bound]. A negative
// bound is treated as zero.
func NewSimulator(source RandomSource, bound float64) *Simulator {
	if bound < 0 {
		bound = 0
	}
	return &Simulator{source: source, bound: bound}
}

// NoiseBound returns the half-width of the noise interval.
func (s *Simulator) NoiseBound() float64 {
	return s.bound
}

// Simulate returns one demand value per index of temperatures and windspeeds. It returns an
// *InvalidInputError and no values if the lengths differ.
func (s *Simulator) Simulate(temperatures, windspeeds []float64) ([]float64, error) {
	if len(temperatures) != len(windspeeds) {
		return nil, &InvalidInputError{Temperatures: len(temperatures), Windspeeds: len(windspeeds)}
	}

	demand := make([]float64, len(temperatures))
	for i := range temperatures {
		demand[i] = Baseline(temperatures[i], windspeeds[i]) + s.noise()
	}
	return demand, nil
}

func (s *Simulator) noise() float64 {
	if s.bound == 0 || s.source == nil {
		return 0
	}
	return s.source.Uniform(-s.bound, s.bound)
}

// Baseline returns the noise-free demand for a single hour.
func Baseline(temperature, windspeed float64) float64 {
	return BaseLoad + TempCoeff*temperature + WindCoeff*windspeed
}
