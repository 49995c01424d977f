// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validClientConfig() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{DeviceID: "dev-1"},
		Adapter: ClientAdapter{
			HTTPAddress:    "https://api.lexiflow.app",
			RequestTimeout: time.Second,
		},
		Storage: ClientStorage{
			DB:              ClientDB{DSN: "file.db", Strategy: StrategyDirect},
			CredentialsPath: "/tmp/creds.bin",
		},
		Workers: ClientWorkers{
			SyncInterval: time.Minute,
			PageSize:     50,
			PushMode:     PushModeItem,
		},
	}
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.sources)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs win and zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.add(sourceEnv, &StructuredConfig{
		Adapter: Adapter{HTTPAddress: "https://example.test"},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "https://example.test", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, StrategyDirect, cfg.Storage.DB.Strategy)
}

func TestBuild_RejectsNegativeRateLimit(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceFlags, &StructuredConfig{Adapter: Adapter{RateLimit: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.sources, 1)
}

func TestWithJSON_LoadsFileNamedByEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"workers": map[string]any{"page_size": 7, "push_mode": "bulk"},
	})

	b := newConfigBuilder().withDefaults()
	b.add(sourceEnv, &StructuredConfig{JSONFilePath: path})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers.PageSize)
	assert.Equal(t, PushModeBulk, cfg.Workers.PushMode)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.add(sourceFlags, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	_, err := b.withJSON().build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), sourceFile)
}

func TestWithJSON_FileSitsBelowEnvAndFlags(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"adapter": map[string]any{"http_address": "http://from-file:3", "rate_limit": 4},
		"storage": map[string]any{"db": map[string]any{"dsn": "file.db"}},
	})

	b := newConfigBuilder().withDefaults()
	b.add(sourceEnv, &StructuredConfig{JSONFilePath: path, Storage: Storage{DB: DB{DSN: "env.db"}}})
	b.add(sourceFlags, &StructuredConfig{Adapter: Adapter{HTTPAddress: "http://from-flag:2"}})

	b = b.withJSON()
	require.NoError(t, b.err)
	names := make([]string, 0, len(b.sources))
	for _, src := range b.sources {
		names = append(names, src.name)
	}
	assert.Equal(t, []string{sourceDefaults, sourceFile, sourceEnv, sourceFlags}, names)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:2", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.InDelta(t, 4.0, cfg.Adapter.RateLimit, 0.0001, "file fills what env and flags leave unset")
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_Precedence(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://from-env:1")
	t.Setenv("STORAGE_DB_DSN", "env.db")

	cfg, err := GetStructuredConfig([]string{"-a", "http://from-flag:2"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:2", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 100, cfg.Workers.PageSize)
}

func TestGetStructuredConfig_BadFlag(t *testing.T) {
	_, err := GetStructuredConfig([]string{"-no-such-flag"})
	assert.Error(t, err)
}

// ── ClientConfig ──────────────────────────────────────────────────────────────

func TestGetClientConfig_FillsDefaults(t *testing.T) {
	cfg, err := GetClientConfig([]string{"-credentials", "/tmp/x.bin"})
	require.NoError(t, err)
	assert.Equal(t, "lexiflow.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/x.bin", cfg.Storage.CredentialsPath)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, PushModeItem, cfg.Workers.PushMode)
}

func TestClientConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "address without scheme", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "localhost:8080" }},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown strategy", mutate: func(c *ClientConfig) { c.Storage.DB.Strategy = "orm" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty credentials path", mutate: func(c *ClientConfig) { c.Storage.CredentialsPath = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero interval", mutate: func(c *ClientConfig) { c.Workers.SyncInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "zero page size", mutate: func(c *ClientConfig) { c.Workers.PageSize = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "unknown push mode", mutate: func(c *ClientConfig) { c.Workers.PushMode = "stream" }, wantErr: ErrInvalidWorkerConfigs},
		{name: "bulk without device", mutate: func(c *ClientConfig) {
			c.Workers.PushMode = PushModeBulk
			c.App.DeviceID = ""
		}, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClientConfig()
			tt.mutate(c)
			err := c.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
