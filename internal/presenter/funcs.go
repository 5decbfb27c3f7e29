// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"time"

	"github.com/vorlif/humanize"
)

// HourLabel formats t as an x-axis label.
func HourLabel(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate formats t as a localized date.
func (p *Presenter) FormatDate(t time.Time) string {
	return p.humanizer.FormatTime(t, humanize.DateFormat)
}

// FloatFormat formats val with the given precision.
func FloatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}

// SummaryHeaders returns the localized column headers of the console summary.
func (p *Presenter) SummaryHeaders() []string {
	headers := make([]string, len(summaryHeaders))
	for i, h := range summaryHeaders {
		headers[i] = p.translator.Get(h)
	}
	return headers
}

// SkippedLabel returns the localized label for skipped locations.
func (p *Presenter) SkippedLabel() string {
	return p.translator.Get(msgSkipped)
}

// ChartsWrittenLabel returns the localized label for the written artifacts.
func (p *Presenter) ChartsWrittenLabel() string {
	return p.translator.Get(msgChartsWritten)
}

// ForecastForLabel returns the localized "forecast for <date>" line.
func (p *Presenter) ForecastForLabel(t time.Time) string {
	return fmt.Sprintf("%s %s", p.translator.Get(msgForecastFor), p.FormatDate(t))
}
