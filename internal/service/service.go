// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service runs the fetch, simulate and render pipeline once or on a refresh interval.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/wneessen/energy-dashboard/internal/config"
	"github.com/wneessen/energy-dashboard/internal/dashboard"
	"github.com/wneessen/energy-dashboard/internal/demand"
	"github.com/wneessen/energy-dashboard/internal/i18n"
	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/presenter"
	"github.com/wneessen/energy-dashboard/internal/render"
	"github.com/wneessen/energy-dashboard/internal/weather"
)

const refreshJobName = "dashboard_refresh_job"

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	provider  weather.Provider
	simulator *demand.Simulator
	artifacts []artifact
	summary   *render.Summary
	output    io.Writer
}

// artifact pairs a renderer with the file name it writes to.
type artifact struct {
	renderer render.Renderer
	file     string
}

// Result describes one completed run.
type Result struct {
	Dashboard *dashboard.Dashboard
	Skipped   []string
	Artifacts []string
}

func New(conf *config.Config, log *logger.Logger, t *i18n.Translator) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	provider, err := selectProvider(conf, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	return newService(conf, log, t, provider)
}

func newService(conf *config.Config, log *logger.Logger, t *i18n.Translator, provider weather.Provider) (*Service, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	pres, err := presenter.New(t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	return &Service{
		config:    conf,
		logger:    log,
		provider:  provider,
		simulator: demand.NewSimulator(demand.NewUniformSource(conf.Demand.Seed), conf.Demand.Noise),
		artifacts: []artifact{
			{renderer: render.NewPNG(pres), file: conf.Output.PNG},
			{renderer: render.NewSVG(pres), file: conf.Output.SVG},
		},
		summary:   render.NewSummary(pres),
		output:    os.Stdout,
	}, nil
}

// Run renders the dashboard once. With a refresh interval configured it keeps re-rendering
// until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	_, err := s.RunOnce(ctx)
	if s.config.Intervals.Refresh <= 0 {
		return err
	}
	if err != nil {
		s.logger.Error("dashboard run failed", logger.Err(err))
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.config.Intervals.Refresh),
		gocron.NewTask(s.refresh),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(refreshJobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", refreshJobName, err)
	}
	scheduler.Start()
	s.logger.Info("dashboard refresh scheduled", slog.Duration("interval", s.config.Intervals.Refresh))

	<-ctx.Done()
	return scheduler.Shutdown()
}

func (s *Service) refresh(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("dashboard refresh failed", logger.Err(err))
	}
}

// RunOnce builds the dashboard and writes both charts. An empty dashboard skips rendering
// without an error.
func (s *Service) RunOnce(ctx context.Context) (*Result, error) {
	log := s.logger.With(slog.String("run_id", uuid.NewString()))

	var opts []dashboard.Option
	locations := s.config.WeatherLocations()
	if s.config.Weather.Parallel {
		opts = append(opts, dashboard.WithParallelFetch(len(locations)))
	}
	builder, err := dashboard.NewBuilder(s.provider, s.simulator, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard builder: %w", err)
	}

	log.Debug("building dashboard", slog.String("provider", s.provider.Name()),
		slog.Int("locations", len(locations)), slog.Float64("noise_bound", s.simulator.NoiseBound()))
	dash := builder.Build(ctx, locations, s.config.ForecastParameters())
	result := &Result{Dashboard: dash, Skipped: skipped(locations, dash)}
	if err = ctx.Err(); err != nil {
		return result, err
	}
	if dash.Empty() {
		log.Warn("no location could be fetched, skipping chart rendering",
			slog.Int("locations", len(locations)))
		return result, nil
	}

	var errs []error
	for _, art := range s.artifacts {
		path := filepath.Join(s.config.Output.Directory, art.file)
		if err = render.WriteFile(art.renderer, dash, path); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Info("chart written", slog.String("format", art.renderer.Name()), slog.String("path", path))
		result.Artifacts = append(result.Artifacts, path)
	}

	if !s.config.Output.DisableSummary {
		if err = s.summary.Write(s.output, dash, result.Skipped, result.Artifacts); err != nil {
			errs = append(errs, err)
		}
	}
	return result, errors.Join(errs...)
}

func skipped(locations []weather.Location, dash *dashboard.Dashboard) []string {
	names := dash.Names()
	var missing []string
	for _, loc := range locations {
		if !slices.Contains(names, loc.Name) {
			missing = append(missing, loc.Name)
		}
	}
	return missing
}
