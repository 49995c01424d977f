// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared across the client: context
// keys, JWT expiry extraction, version generation and the HTTP client
// constructor.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// SyncCycleIDCtxKey is the key used to store the identifier of the running
// sync cycle so every log line of one cycle can be correlated.
var SyncCycleIDCtxKey = contextKey("syncCycleID")

// WithSyncCycleID returns a child context carrying id.
func WithSyncCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SyncCycleIDCtxKey, id)
}

// GetSyncCycleIDFromContext retrieves the sync cycle identifier.
//
//	id, ok := utils.GetSyncCycleIDFromContext(ctx)
//	if !ok {
//	    // not inside a sync cycle
//	}
func GetSyncCycleIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SyncCycleIDCtxKey).(string)
	return id, ok && id != ""
}
