// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter turns a dashboard into the labelled view both chart renderers draw.
package presenter

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/energy-dashboard/internal/dashboard"
	"github.com/wneessen/energy-dashboard/internal/i18n"
)

// SeriesKind tells the renderers how to style a series.
type SeriesKind int

const (
	KindDemand SeriesKind = iota
	KindTemperature
)

// Series is one labelled line of the chart.
type Series struct {
	ID     string
	Kind   SeriesKind
	Label  string
	Short  string
	Unit   string
	Times  []time.Time
	Values []float64
}

// LocationView holds both series of one location plus its daylight window.
type LocationView struct {
	Name        string
	Demand      Series
	Temperature Series
	Sunrise     time.Time
	Sunset      time.Time
	HasDaylight bool
}

// Chart is the presentation model shared by the renderers.
type Chart struct {
	Title            string
	InteractiveTitle string
	Subtitle         string
	XLabel           string
	YLabel           string
	Start            time.Time
	End              time.Time
	Zone             *time.Location
	Locations        []LocationView
}

// Presenter builds Chart values with localized labels.
type Presenter struct {
	translator *i18n.Translator
	humanizer  *humanize.Humanizer
}

func New(translator *i18n.Translator) (*Presenter, error) {
	if translator == nil {
		return nil, fmt.Errorf("translator is required")
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	return &Presenter{
		translator: translator,
		humanizer:  collection.CreateHumanizer(translator.Tag),
	}, nil
}

// BuildChart labels every record of d in dashboard order. The x-axis spans all records; each
// series keeps its own timestamps.
func (p *Presenter) BuildChart(d *dashboard.Dashboard) Chart {
	chart := Chart{
		Title:            p.translator.Get(msgTitle),
		InteractiveTitle: p.translator.Get(msgInteractiveTitle),
		XLabel:           p.translator.Get(msgXLabel),
		YLabel:           p.translator.Get(msgYLabel),
		Zone:             time.UTC,
	}
	start, end, ok := d.TimeRange()
	if ok {
		chart.Start, chart.End = start, end
		chart.Zone = start.Location()
		chart.Subtitle = p.subtitle(start)
	}

	idx := 0
	for name, rec := range d.All() {
		view := LocationView{
			Name: name,
			Demand: Series{
				ID:     fmt.Sprintf("series-%d", idx),
				Kind:   KindDemand,
				Label:  fmt.Sprintf("%s %s (%s)", name, p.translator.Get(msgEnergyDemand), UnitDemand),
				Short:  fmt.Sprintf("%s %s (%s)", name, p.translator.Get(msgDemandShort), UnitDemand),
				Unit:   UnitDemand,
				Times:  rec.Times,
				Values: rec.Demand,
			},
			Temperature: Series{
				ID:     fmt.Sprintf("series-%d", idx+1),
				Kind:   KindTemperature,
				Label:  fmt.Sprintf("%s %s (%s)", name, p.translator.Get(msgTemperature), UnitTemperature),
				Short:  fmt.Sprintf("%s %s (%s)", name, p.translator.Get(msgTempShort), UnitTemperature),
				Unit:   UnitTemperature,
				Times:  rec.Times,
				Values: rec.Temperatures,
			},
		}
		if rec.Len() > 0 {
			view.Sunrise, view.Sunset = daylight(rec.Location.Lat, rec.Location.Lon, rec.Times[0])
			view.HasDaylight = !view.Sunrise.IsZero() && !view.Sunset.IsZero()
		}
		chart.Locations = append(chart.Locations, view)
		idx += 2
	}
	return chart
}

// DaylightLabel returns the localized sunrise and sunset line of a location.
func (p *Presenter) DaylightLabel(view LocationView) string {
	if !view.HasDaylight {
		return ""
	}
	return fmt.Sprintf("%s: %s, %s: %s", p.translator.Get(msgSunrise), HourLabel(view.Sunrise),
		p.translator.Get(msgSunset), HourLabel(view.Sunset))
}

func (p *Presenter) subtitle(start time.Time) string {
	phase := moonphase.New(start).PhaseName()
	return fmt.Sprintf("%s %s · %s %s", p.translator.Get(msgForecastFor), p.FormatDate(start),
		MoonPhaseIcon[phase], p.translator.Get(phase))
}

// daylight returns sunrise and sunset of the day of ref, in the zone of ref. Both are zero
// when the sun does not rise or set on that day.
func daylight(lat, lon float64, ref time.Time) (time.Time, time.Time) {
	rise, set := sunrise.SunriseSunset(lat, lon, ref.Year(), ref.Month(), ref.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}
	}
	return rise.In(ref.Location()), set.In(ref.Location())
}
