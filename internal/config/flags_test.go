// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_AllFields(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "https://api.lexiflow.app",
		"-d", "/var/lib/lexiflow.db",
		"-strategy", "repository",
		"-credentials", "/tmp/creds.bin",
		"-device-id", "laptop",
		"-config", "/etc/lexiflow.json",
		"-request-timeout", "30s",
		"-rate-limit", "2.5",
		"-sync-interval", "1m",
		"-stale-after", "10m",
		"-page-size", "25",
		"-push-mode", "bulk",
		"-log", "/tmp/client.log",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.lexiflow.app", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "/var/lib/lexiflow.db", cfg.Storage.DB.DSN)
	assert.Equal(t, StrategyRepository, cfg.Storage.DB.Strategy)
	assert.Equal(t, "/tmp/creds.bin", cfg.Storage.CredentialsPath)
	assert.Equal(t, "laptop", cfg.App.DeviceID)
	assert.Equal(t, "/etc/lexiflow.json", cfg.JSONFilePath)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.InDelta(t, 2.5, cfg.Adapter.RateLimit, 0.0001)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 10*time.Minute, cfg.Workers.StaleAfter)
	assert.Equal(t, 25, cfg.Workers.PageSize)
	assert.Equal(t, PushModeBulk, cfg.Workers.PushMode)
	assert.Equal(t, "/tmp/client.log", cfg.Log.Path)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := ParseFlags([]string{"-c", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_InvalidDuration(t *testing.T) {
	_, err := ParseFlags([]string{"-sync-interval", "soon"})
	assert.Error(t, err)
}
