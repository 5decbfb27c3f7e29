// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wneessen/energy-dashboard/internal/dashboard"
	"github.com/wneessen/energy-dashboard/internal/presenter"
)

const (
	pngWidth  = 12 * vg.Inch
	pngHeight = 7 * vg.Inch
)

// PNG renders the static comparison chart.
type PNG struct {
	presenter *presenter.Presenter
}

func NewPNG(pres *presenter.Presenter) *PNG {
	return &PNG{presenter: pres}
}

func (r *PNG) Name() string {
	return "png"
}

// Render draws demand as solid and temperature as dashed lines, one color per location.
func (r *PNG) Render(w io.Writer, d *dashboard.Dashboard) error {
	if d == nil || d.Empty() {
		return ErrEmptyDashboard
	}
	chart := r.presenter.BuildChart(d)

	p := plot.New()
	p.Title.Text = chart.Title
	if chart.Subtitle != "" {
		p.Title.Text += "\n" + chart.Subtitle
	}
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel
	p.X.Tick.Marker = hourTicks{zone: chart.Zone}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for idx, view := range chart.Locations {
		col := seriesColor(idx)
		for _, series := range []presenter.Series{view.Demand, view.Temperature} {
			if len(series.Values) == 0 {
				continue
			}
			line, err := plotter.NewLine(seriesXYs(series))
			if err != nil {
				return fmt.Errorf("failed to create line for %s: %w", series.Label, err)
			}
			line.Color = col
			line.Width = vg.Points(1.5)
			if series.Kind == presenter.KindTemperature {
				line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			}
			p.Add(line)
			p.Legend.Add(series.Label, line)
		}
	}

	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}

func seriesXYs(series presenter.Series) plotter.XYs {
	xys := make(plotter.XYs, len(series.Values))
	for i, v := range series.Values {
		xys[i].X = float64(series.Times[i].Unix())
		xys[i].Y = v
	}
	return xys
}

// hourTicks places a labelled tick on full hours, thinned out to at most twelve labels.
type hourTicks struct {
	zone *time.Location
}

func (h hourTicks) Ticks(lo, hi float64) []plot.Tick {
	start := time.Unix(int64(math.Ceil(lo)), 0).In(h.zone)
	end := time.Unix(int64(math.Floor(hi)), 0).In(h.zone)
	first := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, h.zone)
	if first.Before(start) {
		first = first.Add(time.Hour)
	}
	hours := int(end.Sub(first) / time.Hour)
	step := max(1, int(math.Ceil(float64(hours+1)/12)))

	var ticks []plot.Tick
	for i, ts := 0, first; !ts.After(end); i, ts = i+1, ts.Add(time.Hour) {
		tick := plot.Tick{Value: float64(ts.Unix())}
		if i%step == 0 {
			tick.Label = presenter.HourLabel(ts)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}
