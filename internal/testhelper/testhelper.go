// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper holds shared helpers for the package tests.
package testhelper

import (
	"net/http"
	"os"
	"testing"
)

const (
	// TestOnlineAPIURL is a public endpoint used by tests that need real network access.
	TestOnlineAPIURL = "https://api.open-meteo.com/v1/forecast"

	onlineTestEnv = "PERFORM_ONLINE_TESTS"
)

// MockRoundTripper lets tests replace the transport of an http.Client.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

// RoundTrip satisfies the http.RoundTripper interface.
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless online tests are enabled.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if val := os.Getenv(onlineTestEnv); val == "" {
		t.Skipf("skipping online test, set %s to enable", onlineTestEnv)
	}
}
