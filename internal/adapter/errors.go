// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures where no server verdict was received.
	ErrTransport = errors.New("transport error")

	// ErrServiceUnavailable is a server refusal that should be retried later
	// (429, 503, 504). It matches ErrTransport.
	ErrServiceUnavailable = fmt.Errorf("%w: service unavailable", ErrTransport)

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded or
	// lacks required fields.
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrLoginRejected is returned when the server answers login with
	// success=false. It matches ErrUnauthorized.
	ErrLoginRejected = fmt.Errorf("%w: login rejected", ErrUnauthorized)
)
