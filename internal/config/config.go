// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"

	"github.com/wneessen/energy-dashboard/internal/weather"
)

const (
	configEnv = "ENERGYDASHBOARD"

	ProviderOpenMeteo = "open-meteo"
	ProviderOmgo      = "omgo"
)

// DefaultLocations are used when the configuration does not list any location.
var DefaultLocations = []Location{
	{Name: "Kaduna", Latitude: 10.5105, Longitude: 7.4165},
	{Name: "Lagos", Latitude: 6.5244, Longitude: 3.3792},
	{Name: "Abuja", Latitude: 9.0765, Longitude: 7.3986},
}

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Locale   string     `fig:"locale"`

	Weather struct {
		// Allowed values: open-meteo, omgo
		Provider string `fig:"provider" default:"open-meteo"`
		Endpoint string `fig:"endpoint" default:"https://api.open-meteo.com/v1/forecast"`
		// Allowed value: 1 to 24
		ForecastHours     int           `fig:"forecast_hours" default:"24"`
		Timeout           time.Duration `fig:"timeout" default:"10s"`
		Timezone          string        `fig:"timezone"`
		RequestsPerSecond float64       `fig:"requests_per_second" default:"5"`
		Parallel          bool          `fig:"parallel"`
	} `fig:"weather"`

	Demand struct {
		Noise float64 `fig:"noise" default:"3"`
		// 0 seeds from the current time
		Seed uint64 `fig:"seed"`
	} `fig:"demand"`

	Output struct {
		Directory      string `fig:"directory" default:"."`
		PNG            string `fig:"png" default:"energy_weather_chart.png"`
		SVG            string `fig:"svg" default:"energy_weather_chart.svg"`
		DisableSummary bool   `fig:"disable_summary"`
	} `fig:"output"`

	Intervals struct {
		// 0 renders once and exits
		Refresh time.Duration `fig:"refresh"`
	} `fig:"intervals"`

	Locations []Location `fig:"locations"`
}

// Location is a configured forecast location.
type Location struct {
	Name      string  `fig:"name"`
	Latitude  float64 `fig:"latitude"`
	Longitude float64 `fig:"longitude"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.Weather.Provider = strings.ToLower(c.Weather.Provider)
	if c.Weather.Provider != ProviderOpenMeteo && c.Weather.Provider != ProviderOmgo {
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}
	if c.Weather.ForecastHours < 1 || c.Weather.ForecastHours > 24 {
		return fmt.Errorf("invalid forecast hours: %d", c.Weather.ForecastHours)
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("invalid weather timeout: %s", c.Weather.Timeout)
	}
	if c.Weather.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid requests per second: %f", c.Weather.RequestsPerSecond)
	}
	if c.Demand.Noise < 0 {
		return fmt.Errorf("invalid demand noise bound: %f", c.Demand.Noise)
	}
	if c.Output.PNG == "" || c.Output.SVG == "" {
		return fmt.Errorf("output file names must not be empty")
	}
	if c.Output.PNG == c.Output.SVG {
		return fmt.Errorf("output file names must differ: %s", c.Output.PNG)
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}
	if c.Intervals.Refresh < 0 {
		return fmt.Errorf("invalid refresh interval: %s", c.Intervals.Refresh)
	}

	if len(c.Locations) == 0 {
		c.Locations = append([]Location(nil), DefaultLocations...)
	}
	seen := make(map[string]struct{}, len(c.Locations))
	for i, loc := range c.Locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			return fmt.Errorf("location #%d has no name", i+1)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate location: %s", name)
		}
		seen[name] = struct{}{}
		c.Locations[i].Name = name
		if !loc.coordinate().Valid() {
			return fmt.Errorf("invalid coordinates for location %s: %f,%f", name, loc.Latitude, loc.Longitude)
		}
	}

	return nil
}

// WeatherLocations returns the configured locations in configuration order.
func (c *Config) WeatherLocations() []weather.Location {
	locs := make([]weather.Location, len(c.Locations))
	for i, loc := range c.Locations {
		locs[i] = weather.Location{Name: loc.Name, Coordinate: loc.coordinate()}
	}
	return locs
}

// ForecastParameters returns the request parameters shared by all locations.
func (c *Config) ForecastParameters() weather.Parameters {
	params := weather.DefaultParameters(c.Weather.ForecastHours)
	params.Timezone = c.Weather.Timezone
	return params
}

func (l Location) coordinate() weather.Coordinate {
	return weather.Coordinate{Lat: l.Latitude, Lon: l.Longitude}
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
