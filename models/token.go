// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SessionToken is the bearer token the client authenticates with and the
// instant it stops being accepted by the server.
type SessionToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// IsZero reports whether no token is held.
func (t SessionToken) IsZero() bool {
	return t.AccessToken == ""
}

// UsableAt reports whether the token can still be sent at instant now, given
// the safety margin before expiry.
func (t SessionToken) UsableAt(now time.Time, margin time.Duration) bool {
	if t.IsZero() {
		return false
	}
	return t.ExpiresAt.After(now.Add(margin))
}
