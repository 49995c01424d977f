// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	DeviceID        string
	CredentialKey   string
	CredentialScope string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the content API.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound requests.
	RequestTimeout time.Duration
	// RateLimit caps outbound requests per second; zero disables it.
	RateLimit float64
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	DSN      string
	Strategy string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB              ClientDB
	CredentialsPath string
}

// ClientWorkers contains client background sync settings.
type ClientWorkers struct {
	SyncInterval time.Duration
	StaleAfter   time.Duration
	PageSize     int
	PushMode     string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	LogPath string
}

// GetClientConfig builds and validates the client config view from the merged
// structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			DeviceID:        cfg.App.DeviceID,
			CredentialKey:   cfg.App.CredentialKey,
			CredentialScope: cfg.App.CredentialScope,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RateLimit:      cfg.Adapter.RateLimit,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN:      cfg.Storage.DB.DSN,
				Strategy: cfg.Storage.DB.Strategy,
			},
			CredentialsPath: cfg.Storage.CredentialsPath,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			StaleAfter:   cfg.Workers.StaleAfter,
			PageSize:     cfg.Workers.PageSize,
			PushMode:     cfg.Workers.PushMode,
		},
		LogPath: cfg.Log.Path,
	}

	if clientCfg.App.CredentialScope == "" {
		if u, err := user.Current(); err == nil {
			clientCfg.App.CredentialScope = u.Username
		}
	}
	if clientCfg.Storage.CredentialsPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			clientCfg.Storage.CredentialsPath = filepath.Join(dir, "lexiflow", "credentials.bin")
		}
	}

	return clientCfg
}
