// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/wneessen/energy-dashboard/internal/config"
	"github.com/wneessen/energy-dashboard/internal/http"
	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/weather"
	"github.com/wneessen/energy-dashboard/internal/weather/provider/omclient"
	openmeteo "github.com/wneessen/energy-dashboard/internal/weather/provider/open-meteo"
)

func selectProvider(conf *config.Config, log *logger.Logger) (weather.Provider, error) {
	switch conf.Weather.Provider {
	case config.ProviderOpenMeteo:
		client := http.New(log, conf.Weather.Timeout)
		return openmeteo.New(client, log, conf.Weather.Endpoint, conf.Weather.RequestsPerSecond)
	case config.ProviderOmgo:
		return omclient.New(log, conf.Weather.Endpoint, conf.Weather.Timeout, conf.Weather.RequestsPerSecond)
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", conf.Weather.Provider)
	}
}
