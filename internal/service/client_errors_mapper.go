// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/models"
)

// mapAdapterError translates login failures into service errors. The
// adapter error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return err
}

// failureKind tags the error that ended a sync cycle.
func failureKind(err error) models.SyncFailure {
	switch {
	case err == nil:
		return models.SyncFailureNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.SyncFailureCancelled
	case IsSessionTerminal(err):
		return models.SyncFailureSessionRequired
	case errors.Is(err, store.ErrStorage):
		return models.SyncFailureStorage
	case errors.Is(err, adapter.ErrTransport):
		return models.SyncFailureOffline
	default:
		return models.SyncFailureServer
	}
}
