// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/logger"
)

// SessionCaller runs remote calls that need a session. See CallWithSession.
type SessionCaller struct {
	session SessionManager
	refresh RefreshFunc
	logger  *logger.Logger
}

// NewSessionCaller returns a SessionCaller that refreshes session through
// refresh.
func NewSessionCaller(session SessionManager, refresh RefreshFunc, log *logger.Logger) *SessionCaller {
	return &SessionCaller{session: session, refresh: refresh, logger: log}
}

// CallWithSession invokes f with a live session.
//
// A token inside the refresh margin is refreshed before the call. When f
// fails with adapter.ErrUnauthorized the session is refreshed once and f is
// called exactly once more. If the refresh is rejected, or the retried call
// is rejected again, the session is cleared and the unauthorized error is
// returned wrapped in ErrSessionExpired. Any other failure of f is returned
// unchanged. f therefore runs at most twice.
func CallWithSession[T any](ctx context.Context, c *SessionCaller, f func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if err := c.ensureFresh(ctx); err != nil {
		return zero, err
	}

	res, err := f(ctx)
	if err == nil || !errors.Is(err, adapter.ErrUnauthorized) {
		return res, err
	}

	c.logger.Debug().Str("func", "CallWithSession").Msg("session rejected, refreshing once")

	if refreshErr := c.session.Refresh(ctx, c.refresh); refreshErr != nil {
		if IsSessionTerminal(refreshErr) {
			return zero, fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return zero, refreshErr
	}

	res, err = f(ctx)
	if err != nil && errors.Is(err, adapter.ErrUnauthorized) {
		c.logger.Warn().Str("func", "CallWithSession").Msg("session rejected after refresh, clearing it")
		if clearErr := c.session.Clear(); clearErr != nil {
			c.logger.Err(clearErr).Str("func", "CallWithSession").Msg("failed to clear rejected session")
		}
		return zero, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return res, err
}

// CallWithSessionNoResult is CallWithSession for calls without a result.
func CallWithSessionNoResult(ctx context.Context, c *SessionCaller, f func(ctx context.Context) error) error {
	_, err := CallWithSession(ctx, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})
	return err
}

// ensureFresh refreshes a session that is held but inside the margin.
func (c *SessionCaller) ensureFresh(ctx context.Context) error {
	if c.session.CurrentToken() != "" {
		return nil
	}
	if c.session.Session().IsZero() {
		return ErrNoSession
	}

	c.logger.Debug().Str("func", "SessionCaller.ensureFresh").Msg("token inside refresh margin, refreshing")
	return c.session.Refresh(ctx, c.refresh)
}
