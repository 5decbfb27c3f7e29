// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/wneessen/energy-dashboard/internal/dashboard"
	"github.com/wneessen/energy-dashboard/internal/presenter"
)

// Canvas geometry of the interactive chart in pixels.
const (
	svgWidth   = 1200
	svgHeight  = 700
	plotLeft   = 80
	plotRight  = 880
	plotTop    = 90
	plotBottom = 600
	legendLeft = 910
	legendTop  = 100
	legendStep = 22
	pointSize  = 3
)

const svgStyle = `
.series polyline { fill: none; stroke-width: 2; }
.series.hidden { display: none; }
.legend-item { cursor: pointer; }
.legend-item.off { opacity: 0.35; }
.point:hover circle { stroke: black; stroke-width: 1; }
`

const svgScript = `
function toggleSeries(item) {
  var series = document.getElementById(item.getAttribute('data-series'));
  if (!series) { return; }
  var hidden = series.classList.toggle('hidden');
  item.classList.toggle('off', hidden);
}
`

// SVG renders the interactive comparison chart. Each point carries a tooltip and each legend
// entry toggles the visibility of its series.
type SVG struct {
	presenter *presenter.Presenter
}

func NewSVG(pres *presenter.Presenter) *SVG {
	return &SVG{presenter: pres}
}

func (r *SVG) Name() string {
	return "svg"
}

func (r *SVG) Render(w io.Writer, d *dashboard.Dashboard) error {
	if d == nil || d.Empty() {
		return ErrEmptyDashboard
	}
	chart := r.presenter.BuildChart(d)

	var all [][]float64
	for _, view := range chart.Locations {
		all = append(all, view.Demand.Values, view.Temperature.Values)
	}
	lo, hi := valueRange(all...)
	start, end := chart.Start, chart.End
	if !end.After(start) {
		start, end = start.Add(-time.Hour), end.Add(time.Hour)
	}
	sc := scale{start: start, end: end, lo: lo, hi: hi}

	buf := bytes.NewBuffer(nil)
	canvas := svg.New(buf)
	canvas.Start(svgWidth, svgHeight)
	canvas.Title(chart.InteractiveTitle)
	canvas.Style("text/css", svgStyle)
	canvas.Script("application/javascript", svgScript)
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:white")

	canvas.Text(svgWidth/2, 35, chart.InteractiveTitle, "text-anchor:middle;font-size:20px;font-weight:bold")
	canvas.Text(svgWidth/2, 60, chart.Subtitle, "text-anchor:middle;font-size:13px;fill:#555555")

	r.drawAxes(canvas, chart, sc)
	for idx, view := range chart.Locations {
		col := hexColor(seriesColor(idx))
		drawSeries(canvas, view.Demand, col, sc)
		drawSeries(canvas, view.Temperature, col, sc)
	}
	r.drawLegend(canvas, chart)
	canvas.End()

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func (r *SVG) drawAxes(canvas *svg.SVG, chart presenter.Chart, sc scale) {
	axis := "stroke:#333333;stroke-width:1"
	grid := "stroke:#dddddd;stroke-width:1"

	for _, v := range niceTicks(sc.lo, sc.hi, 6) {
		y := sc.y(v)
		canvas.Line(plotLeft, y, plotRight, y, grid)
		canvas.Text(plotLeft-8, y+4, presenter.FloatFormat(v, tickPrecision(sc.lo, sc.hi)),
			"text-anchor:end;font-size:11px")
	}
	for _, tick := range (hourTicks{zone: chart.Zone}).Ticks(float64(sc.start.Unix()), float64(sc.end.Unix())) {
		if tick.Label == "" {
			continue
		}
		x := sc.x(time.Unix(int64(tick.Value), 0))
		canvas.Line(x, plotTop, x, plotBottom, grid)
		canvas.Text(x, plotBottom+16, tick.Label, fmt.Sprintf(`transform="rotate(-45 %d %d)"`, x, plotBottom+16),
			"text-anchor:end;font-size:11px")
	}

	canvas.Line(plotLeft, plotBottom, plotRight, plotBottom, axis)
	canvas.Line(plotLeft, plotTop, plotLeft, plotBottom, axis)
	canvas.Text((plotLeft+plotRight)/2, svgHeight-30, chart.XLabel, "text-anchor:middle;font-size:13px")
	canvas.Text(25, (plotTop+plotBottom)/2, chart.YLabel,
		fmt.Sprintf(`transform="rotate(-90 25 %d)"`, (plotTop+plotBottom)/2), "text-anchor:middle;font-size:13px")
}

func drawSeries(canvas *svg.SVG, series presenter.Series, col string, sc scale) {
	if len(series.Values) == 0 {
		return
	}
	xs := make([]int, len(series.Values))
	ys := make([]int, len(series.Values))
	for i, v := range series.Values {
		xs[i] = sc.x(series.Times[i])
		ys[i] = sc.y(v)
	}

	canvas.Group(fmt.Sprintf(`id="%s"`, series.ID), `class="series"`)
	canvas.Polyline(xs, ys, lineStyle(series.Kind, col))
	for i, v := range series.Values {
		canvas.Group(`class="point"`)
		canvas.Title(fmt.Sprintf("%s\n%s: %s %s", series.Short, presenter.HourLabel(series.Times[i]),
			presenter.FloatFormat(v, 1), series.Unit))
		canvas.Circle(xs[i], ys[i], pointSize, "fill:"+col)
		canvas.Gend()
	}
	canvas.Gend()
}

func (r *SVG) drawLegend(canvas *svg.SVG, chart presenter.Chart) {
	y := legendTop
	for idx, view := range chart.Locations {
		col := hexColor(seriesColor(idx))
		daylight := r.presenter.DaylightLabel(view)
		for _, series := range []presenter.Series{view.Demand, view.Temperature} {
			canvas.Group(`class="legend-item"`, fmt.Sprintf(`data-series="%s"`, series.ID),
				`onclick="toggleSeries(this)"`)
			tip := series.Label
			if daylight != "" {
				tip += "\n" + daylight
			}
			canvas.Title(tip)
			canvas.Line(legendLeft, y, legendLeft+24, y, lineStyle(series.Kind, col))
			canvas.Text(legendLeft+32, y+4, series.Short, "font-size:12px")
			canvas.Gend()
			y += legendStep
		}
		y += legendStep / 2
	}
}

func lineStyle(kind presenter.SeriesKind, col string) string {
	style := "fill:none;stroke-width:2;stroke:" + col
	if kind == presenter.KindTemperature {
		style += ";stroke-dasharray:6,4"
	}
	return style
}

// scale maps timestamps and values into the plot area.
type scale struct {
	start, end time.Time
	lo, hi     float64
}

func (s scale) x(t time.Time) int {
	frac := float64(t.Sub(s.start)) / float64(s.end.Sub(s.start))
	return plotLeft + int(math.Round(frac*float64(plotRight-plotLeft)))
}

func (s scale) y(v float64) int {
	frac := (v - s.lo) / (s.hi - s.lo)
	return plotBottom - int(math.Round(frac*float64(plotBottom-plotTop)))
}

// niceTicks returns evenly spaced round values within lo and hi.
func niceTicks(lo, hi float64, count int) []float64 {
	step := niceStep((hi - lo) / float64(count))
	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func tickPrecision(lo, hi float64) int {
	if niceStep((hi-lo)/6) < 1 {
		return 1
	}
	return 0
}
