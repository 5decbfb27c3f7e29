// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package render draws the dashboard as a static PNG chart, an interactive SVG chart and a
// console summary.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot/plotutil"

	"github.com/wneessen/energy-dashboard/internal/dashboard"
)

// ErrEmptyDashboard is returned when there is nothing to draw.
var ErrEmptyDashboard = errors.New("dashboard has no records")

// Renderer writes one chart artifact for a dashboard.
type Renderer interface {
	Name() string
	Render(w io.Writer, d *dashboard.Dashboard) error
}

// WriteFile renders d into path. The file is only created once rendering succeeded.
func WriteFile(r Renderer, d *dashboard.Dashboard, path string) error {
	if d == nil || d.Empty() {
		return ErrEmptyDashboard
	}
	buf := bytes.NewBuffer(nil)
	if err := r.Render(buf, d); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", r.Name(), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s chart to %s: %w", r.Name(), path, err)
	}
	return nil
}

// seriesColor returns the color of the location at position idx. Both charts share the palette.
func seriesColor(idx int) color.Color {
	return plotutil.Color(idx)
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// valueRange returns the smallest and largest value of all series, padded by five percent.
func valueRange(series ...[]float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	first := true
	for _, values := range series {
		for _, v := range values {
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}
