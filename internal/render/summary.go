// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/energy-dashboard/internal/dashboard"
	"github.com/wneessen/energy-dashboard/internal/presenter"
)

const columnGap = "  "

// Summary prints a per-location overview of a rendered dashboard.
type Summary struct {
	presenter *presenter.Presenter
}

func NewSummary(pres *presenter.Presenter) *Summary {
	return &Summary{presenter: pres}
}

// Write prints the table for d followed by the skipped locations and the written artifacts.
func (s *Summary) Write(w io.Writer, d *dashboard.Dashboard, skipped, artifacts []string) error {
	if d == nil || d.Empty() {
		return ErrEmptyDashboard
	}

	rows := [][]string{s.presenter.SummaryHeaders()}
	for name, rec := range d.All() {
		rows = append(rows, summaryRow(name, rec))
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	sb := strings.Builder{}
	if start, _, ok := d.TimeRange(); ok {
		sb.WriteString(s.presenter.ForecastForLabel(start) + "\n\n")
	}
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == 0 {
				cells[i] = runewidth.FillRight(cell, widths[i])
				continue
			}
			cells[i] = runewidth.FillLeft(cell, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, columnGap), " ") + "\n")
		if n == 0 {
			total := 0
			for _, width := range widths {
				total += width
			}
			sb.WriteString(strings.Repeat("-", total+len(columnGap)*(len(widths)-1)) + "\n")
		}
	}
	if len(skipped) > 0 {
		sb.WriteString(fmt.Sprintf("\n%s: %s\n", s.presenter.SkippedLabel(), strings.Join(skipped, ", ")))
	}
	if len(artifacts) > 0 {
		sb.WriteString(fmt.Sprintf("\n%s: %s\n", s.presenter.ChartsWrittenLabel(), strings.Join(artifacts, ", ")))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func summaryRow(name string, rec *dashboard.Record) []string {
	row := []string{name, strconv.Itoa(rec.Len()), "-", "-", "-", "-", "-"}
	if rec.Len() == 0 {
		return row
	}
	tempLo, tempHi := bounds(rec.Temperatures)
	demandLo, demandHi := bounds(rec.Demand)
	row[2] = presenter.FloatFormat(tempLo, 1) + " " + presenter.UnitTemperature
	row[3] = presenter.FloatFormat(tempHi, 1) + " " + presenter.UnitTemperature
	row[4] = presenter.FloatFormat(demandLo, 1) + " " + presenter.UnitDemand
	row[5] = presenter.FloatFormat(mean(rec.Demand), 1) + " " + presenter.UnitDemand
	row[6] = presenter.FloatFormat(demandHi, 1) + " " + presenter.UnitDemand
	return row
}

func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
