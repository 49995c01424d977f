// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/crypto"
	"github.com/MKhiriev/lexiflow/internal/logger"
)

// ClientStorages groups the client-side stores passed to the service layer.
type ClientStorages struct {
	// Content is the offline cache, direct or repository strategy.
	Content LocalRecordStore
	// Credentials persists the session token.
	Credentials CredentialStore
}

// NewClientStorages opens the local database, applies migrations, and builds
// the store selected by cfg.DB.Strategy plus the credential store.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, app config.ClientApp, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("strategy", cfg.DB.Strategy).Msg("creating new storages...")

	content, err := NewLocalRecordStore(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &ClientStorages{
		Content:     content,
		Credentials: NewCredentialStore(cfg.CredentialsPath, app, crypto.NewSealer(), log),
	}, nil
}

// NewLocalRecordStore opens and migrates the database and returns the
// LocalRecordStore for cfg.Strategy.
func NewLocalRecordStore(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (LocalRecordStore, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	switch cfg.Strategy {
	case config.StrategyDirect, "":
		return NewContentRepository(db, log), nil
	case config.StrategyRepository:
		repo, err := NewGormContentRepository(db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	default:
		db.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}
}
