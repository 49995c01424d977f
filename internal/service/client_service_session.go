// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/models"
)

// TokenRefreshMargin is how long before expiry a token stops being sent.
const TokenRefreshMargin = 5 * time.Minute

type sessionManager struct {
	credentials store.CredentialStore
	logger      *logger.Logger
	now         func() time.Time

	mu    sync.RWMutex
	token models.SessionToken

	refreshGroup singleflight.Group
}

// NewSessionManager returns a SessionManager backed by credentials. It starts
// without a session; call Restore to load the persisted one.
func NewSessionManager(credentials store.CredentialStore, log *logger.Logger) SessionManager {
	return &sessionManager{
		credentials: credentials,
		logger:      log,
		now:         time.Now,
	}
}

func (s *sessionManager) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.token.UsableAt(s.now(), TokenRefreshMargin) {
		return ""
	}
	return s.token.AccessToken
}

func (s *sessionManager) Session() models.SessionToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *sessionManager) SetToken(token models.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if err := s.credentials.Save(token); err != nil {
		s.logger.Err(err).Str("func", "sessionManager.SetToken").Msg("session not persisted")
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *sessionManager) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = models.SessionToken{}
	if err := s.credentials.Clear(); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

func (s *sessionManager) Restore() bool {
	token, ok := s.credentials.Load()
	if !ok {
		return false
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Debug().
		Str("func", "sessionManager.Restore").
		Time("expires_at", token.ExpiresAt).
		Msg("session restored")
	return true
}

func (s *sessionManager) Refresh(ctx context.Context, refresh RefreshFunc) error {
	// the shared exchange must not die with the first caller's context
	shared := context.WithoutCancel(ctx)

	ch := s.refreshGroup.DoChan("refresh", func() (any, error) {
		return nil, s.refresh(shared, refresh)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (s *sessionManager) refresh(ctx context.Context, refresh RefreshFunc) error {
	current := s.Session()
	if current.IsZero() {
		return ErrNoSession
	}

	token, err := refresh(ctx, current.AccessToken)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			s.logger.Info().Str("func", "sessionManager.refresh").Msg("refresh rejected, clearing session")
			if clearErr := s.Clear(); clearErr != nil {
				s.logger.Err(clearErr).Str("func", "sessionManager.refresh").Msg("failed to clear rejected session")
			}
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return fmt.Errorf("refresh session: %w", err)
	}

	// a token persisted on disk is a convenience; the refreshed one is usable either way
	_ = s.SetToken(token)
	return nil
}
