// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig] for values no source may set.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RateLimit < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidAdapterConfigs)
	}
	if cfg.Workers.PageSize < 0 {
		return fmt.Errorf("%w: negative page size", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
	}
	switch cfg.Storage.DB.Strategy {
	case StrategyDirect, StrategyRepository:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Strategy)
	}
	if cfg.Storage.CredentialsPath == "" {
		return fmt.Errorf("%w: empty credentials path", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	raw := cfg.Adapter.HTTPAddress
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	if u, err := url.Parse(raw); err != nil || u.Host == "" {
		return fmt.Errorf("%w: bad address %q", ErrInvalidAdapterConfigs, cfg.Adapter.HTTPAddress)
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.PageSize <= 0 {
		return ErrInvalidWorkerConfigs
	}
	switch cfg.Workers.PushMode {
	case PushModeItem, PushModeBulk:
	default:
		return fmt.Errorf("%w: unknown push mode %q", ErrInvalidWorkerConfigs, cfg.Workers.PushMode)
	}

	if cfg.Workers.PushMode == PushModeBulk && cfg.App.DeviceID == "" {
		return fmt.Errorf("%w: bulk push needs a device id", ErrInvalidAppConfigs)
	}

	return nil
}
