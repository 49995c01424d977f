// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/crypto"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/models"
)

// defaultCredentialKey is the entropy the blob key is derived from when
// App.CredentialKey is not configured.
const defaultCredentialKey = "lexiflow/credential-store/v1/5c0b7e1d9a4f"

// fileCredentialStore keeps the session token in a single encrypted file.
type fileCredentialStore struct {
	path   string
	key    []byte
	sealer crypto.Sealer
	logger *logger.Logger

	mu sync.Mutex
}

// NewCredentialStore derives the blob key from app settings and returns a
// CredentialStore writing to path.
func NewCredentialStore(path string, app config.ClientApp, sealer crypto.Sealer, log *logger.Logger) CredentialStore {
	entropy := app.CredentialKey
	if entropy == "" {
		entropy = defaultCredentialKey
	}

	return &fileCredentialStore{
		path:   path,
		key:    sealer.DeriveKey(entropy, app.CredentialScope),
		sealer: sealer,
		logger: log,
	}
}

func (s *fileCredentialStore) Save(token models.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.sealer.Seal(token, s.key)
	if err != nil {
		s.logger.Err(err).Str("func", "fileCredentialStore.Save").Msg("failed to seal session")
		return fmt.Errorf("seal session: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	// write-then-rename so a crash never leaves a torn blob
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace credentials: %w", err)
	}

	return nil
}

func (s *fileCredentialStore) Load() (models.SessionToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.SessionToken{}, false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "fileCredentialStore.Load").Msg("credentials unreadable, treating as logged out")
		return models.SessionToken{}, false
	}

	var token models.SessionToken
	if err = s.sealer.Open(blob, s.key, &token); err != nil {
		s.logger.Warn().Err(err).Str("func", "fileCredentialStore.Load").Msg("credentials cannot be decrypted, treating as logged out")
		return models.SessionToken{}, false
	}
	if token.IsZero() {
		return models.SessionToken{}, false
	}

	return token, true
}

func (s *fileCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Err(err).Str("func", "fileCredentialStore.Clear").Msg("failed to remove credentials")
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
