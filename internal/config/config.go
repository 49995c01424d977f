// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from defaults,
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds device identity and credential-encryption settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local database and credential file settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote content API settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds sync scheduling settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the rotating log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// DeviceID identifies this installation in POST /sync requests.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// CredentialKey is the fixed entropy the credential encryption key is
	// derived from. Overriding it invalidates any stored session.
	// Env: APP_CREDENTIAL_KEY
	CredentialKey string `env:"CREDENTIAL_KEY"`

	// CredentialScope salts the credential key so a blob copied to another
	// account cannot be opened. Defaults to the OS user name.
	// Env: APP_CREDENTIAL_SCOPE
	CredentialScope string `env:"CREDENTIAL_SCOPE"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`

	// CredentialsPath is where the encrypted session blob is written.
	// Env: STORAGE_CREDENTIALS_PATH
	CredentialsPath string `env:"CREDENTIALS_PATH"`
}

// DB holds local SQLite settings.
type DB struct {
	// DSN is the SQLite file path or URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// Strategy selects the local store implementation: "direct" (database/sql
	// with squirrel-built queries) or "repository" (gorm).
	// Env: STORAGE_DB_STRATEGY
	Strategy string `env:"STRATEGY"`
}

// Adapter holds settings for the remote content API.
type Adapter struct {
	// HTTPAddress is the base URL of the content API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit caps outbound requests per second. Zero disables throttling.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`
}

// Workers holds background sync settings.
type Workers struct {
	// SyncInterval is how often the background job runs a sync cycle.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// StaleAfter is how old the watermark may get before a read triggers a sync.
	// Env: WORKERS_STALE_AFTER
	StaleAfter time.Duration `env:"STALE_AFTER"`

	// PageSize is the page size used when pulling server changes.
	// Env: WORKERS_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// PushMode is "item" (one request per change) or "bulk" (POST /sync for
	// updates and deletions).
	// Env: WORKERS_PUSH_MODE
	PushMode string `env:"PUSH_MODE"`
}

// Log holds log file settings.
type Log struct {
	// Path of the log file. Empty means next to the executable.
	// Env: LOG_PATH
	Path string `env:"PATH"`
}

// Store strategies accepted by DB.Strategy.
const (
	StrategyDirect     = "direct"
	StrategyRepository = "repository"
)

// Push modes accepted by Workers.PushMode.
const (
	PushModeItem = "item"
	PushModeBulk = "bulk"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: "lexiflow.db", Strategy: StrategyDirect},
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			SyncInterval: 5 * time.Minute,
			StaleAfter:   15 * time.Minute,
			PageSize:     100,
			PushMode:     PushModeItem,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources. args are the command-line arguments without the program
// name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
