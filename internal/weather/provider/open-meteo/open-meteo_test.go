// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/wneessen/energy-dashboard/internal/http"
	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/testhelper"
	"github.com/wneessen/energy-dashboard/internal/weather"
)

const testFile = "../../../../testdata/open-meteo-forecast.json"

var testLocation = weather.Location{Name: "Kaduna", Coordinate: weather.Coordinate{Lat: 10.5105, Lon: 7.4165}}

func TestNew(t *testing.T) {
	log := logger.NewLogger(slog.LevelInfo, io.Discard)
	t.Run("new provider succeeds", func(t *testing.T) {
		var provider weather.Provider
		provider, err := New(http.New(log, 0), log, "", 0)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.Name() != "open-meteo" {
			t.Errorf("expected provider name to be open-meteo, got %s", provider.Name())
		}
	})
	t.Run("new provider without http client fails", func(t *testing.T) {
		if _, err := New(nil, log, "", 0); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
	t.Run("new provider without logger fails", func(t *testing.T) {
		if _, err := New(http.New(log, 0), nil, "", 0); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
}

func TestOpenMeteo_Fetch(t *testing.T) {
	t.Run("fetching a forecast succeeds", func(t *testing.T) {
		var query url.Values
		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			query = r.URL.Query()
			serveFile(t, w, testFile)
		}))
		defer server.Close()

		raw, err := testProvider(t, server.URL).Fetch(t.Context(), testLocation, weather.DefaultParameters(24))
		if err != nil {
			t.Fatalf("failed to fetch forecast: %s", err)
		}
		if raw.Len() != 24 {
			t.Fatalf("expected 24 hourly values, got %d", raw.Len())
		}
		if raw.Times[0] != "2026-10-17T23:00:00Z" || raw.Times[23] != "2026-10-18T22:00:00Z" {
			t.Errorf("unexpected time range: %s - %s", raw.Times[0], raw.Times[23])
		}
		if raw.Temperatures[13] != 28.5 || raw.WindSpeeds[13] != 5.2 {
			t.Errorf("unexpected values at index 13: temp=%f wind=%f", raw.Temperatures[13], raw.WindSpeeds[13])
		}
		if raw.UTCOffsetSeconds != 3600 {
			t.Errorf("expected UTC offset 3600, got %d", raw.UTCOffsetSeconds)
		}
		if raw.Timezone != "Africa/Lagos" {
			t.Errorf("expected timezone Africa/Lagos, got %s", raw.Timezone)
		}

		wantQuery := map[string]string{
			"latitude":      "10.510500",
			"longitude":     "7.416500",
			"hourly":        "temperature_2m,wind_speed_10m",
			"forecast_days": "1",
			"timeformat":    "unixtime",
		}
		for key, want := range wantQuery {
			if got := query.Get(key); got != want {
				t.Errorf("expected query parameter %s to be %q, got %q", key, want, got)
			}
		}
		if query.Has("timezone") {
			t.Error("expected no timezone parameter when none is configured")
		}
	})
	t.Run("configured timezone is sent", func(t *testing.T) {
		var query url.Values
		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			query = r.URL.Query()
			serveFile(t, w, testFile)
		}))
		defer server.Close()

		params := weather.DefaultParameters(24)
		params.Timezone = "auto"
		if _, err := testProvider(t, server.URL).Fetch(t.Context(), testLocation, params); err != nil {
			t.Fatalf("failed to fetch forecast: %s", err)
		}
		if query.Get("timezone") != "auto" {
			t.Errorf("expected timezone parameter to be auto, got %q", query.Get("timezone"))
		}
	})

	failures := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non-success status fails", 400, `{"error":true,"reason":"Cannot initialize WeatherVariable"}`, "400"},
		{"invalid JSON fails", 200, `{"hourly":`, "failed to decode JSON"},
		{"missing hourly object fails", 200, `{"latitude":1}`, `"hourly"`},
		{
			"missing wind speed fails", 200,
			`{"hourly":{"time":[1792278000],"temperature_2m":[20.1]}}`, "wind_speed_10m",
		},
		{
			"null values fail", 200,
			`{"hourly":{"time":[1792278000],"temperature_2m":[null],"wind_speed_10m":[3]}}`, "null value",
		},
		{
			"unequal series lengths fail", 200,
			`{"hourly":{"time":[1792278000,1792281600],"temperature_2m":[20],"wind_speed_10m":[3,4]}}`,
			"length mismatch",
		},
		{
			"empty series fail", 200,
			`{"hourly":{"time":[],"temperature_2m":[],"wind_speed_10m":[]}}`, ErrNoHourlyData.Error(),
		},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			raw, err := testProvider(t, server.URL).Fetch(t.Context(), testLocation, weather.DefaultParameters(24))
			if err == nil {
				t.Fatal("expected fetch to fail")
			}
			if raw != nil {
				t.Error("expected no forecast on failure")
			}
			var fetchErr *weather.FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected a FetchError, got %T: %s", err, err)
			}
			if fetchErr.Location != testLocation.Name {
				t.Errorf("expected location %s, got %s", testLocation.Name, fetchErr.Location)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error to contain %q, got %s", tc.wantErr, err)
			}
		})
	}

	t.Run("canceled context fails with a FetchError", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := testProvider(t, "http://127.0.0.1:0").Fetch(ctx, testLocation, weather.DefaultParameters(24))
		var fetchErr *weather.FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected a FetchError, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected error to wrap %s, got %s", context.Canceled, err)
		}
	})
	t.Run("fetching from the online API succeeds", func(t *testing.T) {
		testhelper.PerformIntegrationTests(t)
		log := logger.New(slog.LevelDebug)
		provider, err := New(http.New(log, 0), log, testhelper.TestOnlineAPIURL, 1)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		raw, err := provider.Fetch(t.Context(), testLocation, weather.DefaultParameters(24))
		if err != nil {
			t.Fatalf("failed to fetch forecast: %s", err)
		}
		if raw.Len() < 24 {
			t.Errorf("expected at least 24 hourly values, got %d", raw.Len())
		}
	})
}

func testProvider(t *testing.T, endpoint string) *OpenMeteo {
	t.Helper()
	log := logger.NewLogger(slog.LevelDebug, io.Discard)
	provider, err := New(http.New(log, 0), log, endpoint, 0)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	return provider
}

func serveFile(t *testing.T, w stdhttp.ResponseWriter, file string) {
	t.Helper()
	data, err := os.ReadFile(file)
	if err != nil {
		t.Errorf("failed to read fixture: %s", err)
		w.WriteHeader(stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
