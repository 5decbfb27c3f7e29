// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package omclient provides a weather.Provider backed by the hectormalot/omgo Open-Meteo client.
package omclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hectormalot/omgo"
	"golang.org/x/time/rate"

	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/weather"
)

const name = "omgo"

var ErrNoHourlyData = errors.New("response contains no hourly data")

type Provider struct {
	client  omgo.Client
	limiter *rate.Limiter
	log     *logger.Logger
	timeout time.Duration
}

// New returns an omgo based provider. An empty endpoint keeps the omgo default. The omgo
// client has no forecast_days option, so it returns the provider default of several days;
// truncation to the horizon happens on assembly.
func New(log *logger.Logger, endpoint string, timeout time.Duration, rps float64) (*Provider, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	if endpoint != "" {
		client.URL = endpoint
	}
	client.Client = &http.Client{Timeout: timeout}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Provider{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
		timeout: timeout,
	}, nil
}

func (p *Provider) Name() string {
	return name
}

// Fetch requests the hourly series in GMT and leaves the conversion into params.Timezone to
// assembly. omgo parses local times without their offset, so requesting a zone would lose it.
func (p *Provider) Fetch(ctx context.Context, loc weather.Location, params weather.Parameters) (*weather.RawForecast, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, weather.NewFetchError(loc.Name, fmt.Errorf("rate limit wait canceled: %w", err))
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	location, err := omgo.NewLocation(loc.Lat, loc.Lon)
	if err != nil {
		return nil, weather.NewFetchError(loc.Name, fmt.Errorf("invalid location: %w", err))
	}
	opts := &omgo.Options{HourlyMetrics: params.HourlyMetrics}

	p.log.Debug("requesting forecast", slog.String("provider", name), slog.String("location", loc.Name))
	body, err := p.client.Get(ctx, location, opts)
	if err != nil {
		return nil, weather.NewFetchError(loc.Name, fmt.Errorf("failed to get forecast data: %w", err))
	}
	raw, err := rawForecast(body, params.Timezone)
	if err != nil {
		return nil, weather.NewFetchError(loc.Name, fmt.Errorf("malformed Open-Meteo response: %w", err))
	}
	return raw, nil
}

// rawForecast converts a GMT forecast body into raw series presented in timezone.
func rawForecast(body []byte, timezone string) (*weather.RawForecast, error) {
	forecast, err := omgo.ParseBody(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse forecast: %w", err)
	}
	// ParseBody reads null values as 0
	if err = checkNulls(body, weather.MetricTemperature, weather.MetricWindSpeed); err != nil {
		return nil, err
	}
	if len(forecast.HourlyTimes) == 0 {
		return nil, ErrNoHourlyData
	}

	raw := &weather.RawForecast{
		Times:        make([]string, len(forecast.HourlyTimes)),
		Temperatures: forecast.HourlyMetrics[weather.MetricTemperature],
		WindSpeeds:   forecast.HourlyMetrics[weather.MetricWindSpeed],
		Timezone:     timezone,
	}
	for i, t := range forecast.HourlyTimes {
		raw.Times[i] = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC).
			Format(time.RFC3339)
	}
	if err = raw.Validate(); err != nil {
		return nil, err
	}
	return raw, nil
}

func checkNulls(body []byte, metrics ...string) error {
	var res struct {
		Hourly map[string]json.RawMessage `json:"hourly"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	for _, metric := range metrics {
		data, ok := res.Hourly[metric]
		if !ok {
			continue
		}
		var values []*float64
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("invalid values in %q: %w", metric, err)
		}
		for i, v := range values {
			if v == nil {
				return fmt.Errorf("null value in %q at index %d", metric, i)
			}
		}
	}
	return nil
}
