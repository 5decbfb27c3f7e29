// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the energy-dashboard command.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/wneessen/energy-dashboard/internal/config"
	"github.com/wneessen/energy-dashboard/internal/i18n"
	"github.com/wneessen/energy-dashboard/internal/logger"
	"github.com/wneessen/energy-dashboard/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// Environment overrides are read by the config loader, so the .env file goes first
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to load env file", logger.Err(err))
		os.Exit(1)
	}

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize energy-dashboard service", logger.Err(err))
		os.Exit(1)
	}

	log.Info("starting energy-dashboard", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("energy-dashboard run failed", logger.Err(err))
		os.Exit(1)
	}
}

// loadConfig reads the config from path, from the default location or from defaults and
// environment only, in that order.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewFromFile(filepath.Dir(path), filepath.Base(path))
	}
	if dir, file := findConfigFile(); dir != "" && file != "" {
		return config.NewFromFile(dir, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "energy-dashboard", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
