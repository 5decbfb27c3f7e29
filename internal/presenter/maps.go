// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// Chart labels, translated through the i18n catalog.
const (
	msgTitle            localize.MsgID = "Energy Demand vs. Temperature Across Cities"
	msgInteractiveTitle localize.MsgID = "Interactive Energy Demand vs. Temperature Across Cities"
	msgXLabel           localize.MsgID = "Hour of Day"
	msgYLabel           localize.MsgID = "Values"
	msgEnergyDemand     localize.MsgID = "Energy Demand"
	msgTemperature      localize.MsgID = "Temperature"
	msgDemandShort      localize.MsgID = "Demand"
	msgTempShort        localize.MsgID = "Temp"
	msgSunrise          localize.MsgID = "Sunrise"
	msgSunset           localize.MsgID = "Sunset"
	msgForecastFor      localize.MsgID = "Forecast for"
)

// Summary table headers.
var summaryHeaders = []localize.MsgID{
	"Location", "Hours", "Min temp", "Max temp", "Min demand", "Mean demand", "Max demand",
}

const (
	msgSkipped       localize.MsgID = "Skipped"
	msgChartsWritten localize.MsgID = "Charts written"
)

const (
	// UnitTemperature is the unit of the temperature series.
	UnitTemperature = "°C"
	// UnitDemand is the unit of the demand series.
	UnitDemand = "MW"
)
