// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/wneessen/energy-dashboard/internal/dashboard"
	"github.com/wneessen/energy-dashboard/internal/i18n"
	"github.com/wneessen/energy-dashboard/internal/weather"
)

var testZone = time.FixedZone("WAT", 3600)

func testDashboard(t *testing.T, names ...string) *dashboard.Dashboard {
	t.Helper()
	start := time.Date(2026, 10, 18, 0, 0, 0, 0, testZone)
	records := make([]*dashboard.Record, 0, len(names))
	for _, name := range names {
		rec := &dashboard.Record{Location: weather.Location{
			Name:       name,
			Coordinate: weather.Coordinate{Lat: 6.5244, Lon: 3.3792},
		}}
		for i := 0; i < 3; i++ {
			rec.Times = append(rec.Times, start.Add(time.Duration(i)*time.Hour))
			rec.Temperatures = append(rec.Temperatures, 25+float64(i))
			rec.WindSpeeds = append(rec.WindSpeeds, 4)
			rec.Demand = append(rec.Demand, 71.3+float64(i))
		}
		records = append(records, rec)
	}
	dash, err := dashboard.New(records...)
	if err != nil {
		t.Fatalf("failed to create dashboard: %s", err)
	}
	return dash
}

func testPresenter(t *testing.T) *Presenter {
	t.Helper()
	translator, err := i18n.New("en")
	if err != nil {
		t.Fatalf("failed to create translator: %s", err)
	}
	pres, err := New(translator)
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	return pres
}

func TestNew(t *testing.T) {
	t.Run("a translator is required", func(t *testing.T) {
		if _, err := New(nil); err == nil {
			t.Error("expected presenter creation to fail")
		}
	})
}

func TestPresenter_BuildChart(t *testing.T) {
	t.Run("locations keep dashboard order and labels", func(t *testing.T) {
		pres := testPresenter(t)
		chart := pres.BuildChart(testDashboard(t, "Lagos", "Abuja"))
		if chart.Title != "Energy Demand vs. Temperature Across Cities" {
			t.Errorf("unexpected title: %s", chart.Title)
		}
		if chart.InteractiveTitle != "Interactive Energy Demand vs. Temperature Across Cities" {
			t.Errorf("unexpected interactive title: %s", chart.InteractiveTitle)
		}
		if chart.XLabel != "Hour of Day" || chart.YLabel != "Values" {
			t.Errorf("unexpected axis labels: %s / %s", chart.XLabel, chart.YLabel)
		}
		if len(chart.Locations) != 2 {
			t.Fatalf("expected 2 locations, got %d", len(chart.Locations))
		}
		lagos := chart.Locations[0]
		if lagos.Name != "Lagos" || chart.Locations[1].Name != "Abuja" {
			t.Errorf("unexpected location order: %s, %s", lagos.Name, chart.Locations[1].Name)
		}
		if lagos.Demand.Label != "Lagos Energy Demand (MW)" {
			t.Errorf("unexpected demand label: %s", lagos.Demand.Label)
		}
		if lagos.Temperature.Label != "Lagos Temperature (°C)" {
			t.Errorf("unexpected temperature label: %s", lagos.Temperature.Label)
		}
		if lagos.Temperature.Short != "Lagos Temp (°C)" || lagos.Demand.Short != "Lagos Demand (MW)" {
			t.Errorf("unexpected short labels: %s / %s", lagos.Temperature.Short, lagos.Demand.Short)
		}
		if lagos.Demand.Kind != KindDemand || lagos.Temperature.Kind != KindTemperature {
			t.Error("unexpected series kinds")
		}
		if lagos.Demand.ID == chart.Locations[1].Demand.ID || lagos.Demand.ID == lagos.Temperature.ID {
			t.Error("expected unique series IDs")
		}
	})
	t.Run("time range and subtitle come from the records", func(t *testing.T) {
		pres := testPresenter(t)
		chart := pres.BuildChart(testDashboard(t, "Lagos"))
		if !chart.Start.Equal(time.Date(2026, 10, 18, 0, 0, 0, 0, testZone)) {
			t.Errorf("unexpected chart start: %s", chart.Start)
		}
		if !chart.End.Equal(time.Date(2026, 10, 18, 2, 0, 0, 0, testZone)) {
			t.Errorf("unexpected chart end: %s", chart.End)
		}
		if !strings.HasPrefix(chart.Subtitle, "Forecast for") {
			t.Errorf("unexpected subtitle: %s", chart.Subtitle)
		}
	})
	t.Run("daylight is calculated for tropical locations", func(t *testing.T) {
		pres := testPresenter(t)
		view := pres.BuildChart(testDashboard(t, "Lagos")).Locations[0]
		if !view.HasDaylight {
			t.Fatal("expected sunrise and sunset to be available")
		}
		if !view.Sunrise.Before(view.Sunset) {
			t.Errorf("expected sunrise %s before sunset %s", view.Sunrise, view.Sunset)
		}
		label := pres.DaylightLabel(view)
		if !strings.Contains(label, "Sunrise: ") || !strings.Contains(label, "Sunset: ") {
			t.Errorf("unexpected daylight label: %s", label)
		}
	})
	t.Run("empty dashboard yields an empty chart", func(t *testing.T) {
		pres := testPresenter(t)
		dash, err := dashboard.New()
		if err != nil {
			t.Fatalf("failed to create dashboard: %s", err)
		}
		chart := pres.BuildChart(dash)
		if len(chart.Locations) != 0 {
			t.Errorf("expected no locations, got %d", len(chart.Locations))
		}
		if chart.Subtitle != "" {
			t.Errorf("expected empty subtitle, got %s", chart.Subtitle)
		}
	})
}

func TestHourLabel(t *testing.T) {
	ts := time.Date(2026, 10, 18, 7, 0, 0, 0, testZone)
	if got := HourLabel(ts); got != "07:00" {
		t.Errorf("expected hour label 07:00, got %s", got)
	}
}

func TestFloatFormat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      string
	}{
		{"one decimal", 71.26, 1, "71.3"},
		{"no decimals", 49.6, 0, "50"},
		{"negative", -2.346, 2, "-2.35"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FloatFormat(tc.value, tc.precision); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPresenter_SummaryHeaders(t *testing.T) {
	pres := testPresenter(t)
	headers := pres.SummaryHeaders()
	if len(headers) != 7 || headers[0] != "Location" || headers[6] != "Max demand" {
		t.Errorf("unexpected summary headers: %v", headers)
	}
}
