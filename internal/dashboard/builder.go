// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/weather"
)

// Builder fetches and assembles the records of all configured locations.
type Builder struct {
	provider weather.Provider
	sim      Simulator
	log      *logger.Logger

	// fetchLimit > 1 enables concurrent fetching with at most fetchLimit requests in flight.
	fetchLimit int
}

// Option configures a Builder.
type Option func(*Builder)

// WithParallelFetch fetches up to limit locations concurrently. Records are still assembled
// and inserted in configuration order.
func WithParallelFetch(limit int) Option {
	return func(b *Builder) {
		b.fetchLimit = limit
	}
}

// NewBuilder returns a Builder using provider for forecasts and sim for demand.
func NewBuilder(provider weather.Provider, sim Simulator, log *logger.Logger, opts ...Option) (*Builder, error) {
	if provider == nil {
		return nil, fmt.Errorf("weather provider is required")
	}
	if sim == nil {
		return nil, fmt.Errorf("demand simulator is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	b := &Builder{provider: provider, sim: sim, log: log, fetchLimit: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

type fetchResult struct {
	raw *weather.RawForecast
	err error
}

// Build returns the dashboard for locations. A location whose fetch or assembly fails is
// logged and left out; the result is empty if every location failed.
func (b *Builder) Build(ctx context.Context, locations []weather.Location, params weather.Parameters) *Dashboard {
	results := b.fetchAll(ctx, locations, params)

	records := make([]*Record, 0, len(locations))
	seen := make(map[string]struct{}, len(locations))
	for i, loc := range locations {
		if _, ok := seen[loc.Name]; ok {
			b.log.Warn("skipping location", slog.String("location", loc.Name),
				logger.Err(fmt.Errorf("%w: %s", ErrDuplicateLocation, loc.Name)))
			continue
		}
		res := results[i]
		if res.err != nil {
			b.log.Warn("skipping location", slog.String("location", loc.Name), logger.Err(res.err))
			continue
		}
		rec, err := Assemble(loc, res.raw, params.Hours, b.sim)
		if err != nil {
			b.log.Warn("skipping location", slog.String("location", loc.Name), logger.Err(err))
			continue
		}
		seen[loc.Name] = struct{}{}
		records = append(records, rec)
		b.log.Debug("location assembled", slog.String("location", loc.Name), slog.Int("hours", rec.Len()))
	}

	dash, err := New(records...)
	if err != nil {
		// records are unique and non-nil at this point
		b.log.Error("failed to create dashboard", logger.Err(err))
		return &Dashboard{records: make(map[string]*Record)}
	}
	return dash
}

func (b *Builder) fetchAll(ctx context.Context, locations []weather.Location, params weather.Parameters) []fetchResult {
	results := make([]fetchResult, len(locations))
	if b.fetchLimit <= 1 {
		for i, loc := range locations {
			results[i] = b.fetch(ctx, loc, params)
		}
		return results
	}

	var group errgroup.Group
	group.SetLimit(b.fetchLimit)
	for i, loc := range locations {
		group.Go(func() error {
			results[i] = b.fetch(ctx, loc, params)
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (b *Builder) fetch(ctx context.Context, loc weather.Location, params weather.Parameters) fetchResult {
	if err := ctx.Err(); err != nil {
		return fetchResult{err: weather.NewFetchError(loc.Name, err)}
	}
	raw, err := b.provider.Fetch(ctx, loc, params)
	if err != nil {
		return fetchResult{err: err}
	}
	return fetchResult{raw: raw}
}
