// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/models"
)

type clientAuthService struct {
	remote  adapter.ContentClient
	session SessionManager
	logger  *logger.Logger
}

// NewClientAuthService returns the auth service storing sessions in session.
func NewClientAuthService(remote adapter.ContentClient, session SessionManager, log *logger.Logger) ClientAuthService {
	return &clientAuthService{remote: remote, session: session, logger: log}
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	res, err := a.remote.Login(ctx, creds)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	if err = a.session.SetToken(res.Token); err != nil {
		// the session works for this run but will not survive a restart
		a.logger.Warn().Err(err).Str("func", "clientAuthService.Login").Msg("session kept in memory only")
	}

	a.logger.Info().Str("func", "clientAuthService.Login").Str("username", creds.Username).Msg("logged in")
	return res.User, nil
}

func (a *clientAuthService) Logout(_ context.Context) error {
	if err := a.session.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *clientAuthService) RestoreSession(_ context.Context) bool {
	return a.session.Restore()
}
