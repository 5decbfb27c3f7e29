// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wneessen/energy-dashboard/internal/http"
	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/weather"
)

const (
	name = "open-meteo"

	// DefaultEndpoint is the Open-Meteo forecast API.
	DefaultEndpoint = "https://api.open-meteo.com/v1/forecast"
)

var ErrNoHourlyData = errors.New("response contains no hourly data")

type OpenMeteo struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	log      *logger.Logger
}

// response is the subset of the forecast response we rely on. Times are requested as unix
// seconds so DST changeovers stay unambiguous. Hourly values are pointers because the API
// reports unavailable hours as null.
type response struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Timezone         string  `json:"timezone"`
	Hourly           *struct {
		Time        []int64    `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		WindSpeed   []*float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

// New returns an Open-Meteo provider. An empty endpoint selects DefaultEndpoint and a
// non-positive rps disables request pacing.
func New(client *http.Client, log *logger.Logger, endpoint string, rps float64) (*OpenMeteo, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &OpenMeteo{
		endpoint: endpoint,
		http:     client,
		limiter:  rate.NewLimiter(limit, 1),
		log:      log,
	}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// Fetch requests one forecast day of hourly temperature and wind speed for loc. Every failure
// is returned as a *weather.FetchError.
func (o *OpenMeteo) Fetch(ctx context.Context, loc weather.Location, params weather.Parameters) (*weather.RawForecast, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, weather.NewFetchError(loc.Name, fmt.Errorf("rate limit wait canceled: %w", err))
	}

	// latitude=10.5105&longitude=7.4165&hourly=temperature_2m,wind_speed_10m&forecast_days=1&timeformat=unixtime
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	query.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	query.Set("hourly", strings.Join(params.HourlyMetrics, ","))
	query.Set("forecast_days", strconv.Itoa(weather.ForecastDays))
	query.Set("timeformat", "unixtime")
	if params.Timezone != "" {
		query.Set("timezone", params.Timezone)
	}

	o.log.Debug("requesting forecast", slog.String("provider", name), slog.String("location", loc.Name),
		slog.String("coordinates", loc.Coordinate.String()))
	res := new(response)
	if _, err := o.http.Get(ctx, o.endpoint, res, query, nil); err != nil {
		return nil, weather.NewFetchError(loc.Name,
			fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err))
	}

	raw, err := res.rawForecast()
	if err != nil {
		return nil, weather.NewFetchError(loc.Name, fmt.Errorf("malformed Open-Meteo response: %w", err))
	}
	return raw, nil
}

func (r *response) rawForecast() (*weather.RawForecast, error) {
	if r.Hourly == nil {
		return nil, fmt.Errorf("missing field %q", "hourly")
	}
	raw := &weather.RawForecast{
		Timezone:         r.Timezone,
		UTCOffsetSeconds: r.UTCOffsetSeconds,
	}
	if r.Hourly.Time != nil {
		raw.Times = make([]string, len(r.Hourly.Time))
		for i, sec := range r.Hourly.Time {
			raw.Times[i] = time.Unix(sec, 0).UTC().Format(time.RFC3339)
		}
	}
	var err error
	if raw.Temperatures, err = values(weather.MetricTemperature, r.Hourly.Temperature); err != nil {
		return nil, err
	}
	if raw.WindSpeeds, err = values(weather.MetricWindSpeed, r.Hourly.WindSpeed); err != nil {
		return nil, err
	}
	if err = raw.Validate(); err != nil {
		return nil, err
	}
	if raw.Len() == 0 {
		return nil, ErrNoHourlyData
	}
	return raw, nil
}

func values(field string, in []*float64) ([]float64, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]float64, len(in))
	for i, v := range in {
		if v == nil {
			return nil, fmt.Errorf("null value in %q at index %d", field, i)
		}
		out[i] = *v
	}
	return out, nil
}
