// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNoSession is returned when an authenticated call is attempted without
	// a stored session. The user has to log in.
	ErrNoSession = errors.New("no session")

	// ErrSessionExpired is returned when the server rejected both the session
	// and its refresh. The session has been cleared.
	ErrSessionExpired = errors.New("session expired")

	// ErrResolutionFailed is returned by the conflict resolver when the remote
	// or local step failed. The conflict stays open.
	ErrResolutionFailed = errors.New("conflict resolution failed")

	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrUnknownResolution   = errors.New("unknown conflict resolution")
)

// IsSessionTerminal reports whether err means the user has to log in again.
func IsSessionTerminal(err error) bool {
	return errors.Is(err, ErrNoSession) || errors.Is(err, ErrSessionExpired)
}
