// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// NewVersion returns a fresh opaque version token. UUID v7 keeps tokens
// roughly time-ordered; v4 is the fallback if the clock source fails.
func NewVersion() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewDeviceID returns a random device identifier for bulk sync requests.
func NewDeviceID() string {
	return uuid.NewString()
}
