// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background workers as one unit.
package workers

import "context"

// Worker is a background worker with an explicit lifecycle.
//
// Run starts the worker and returns without blocking; the worker keeps going
// until Stop is called or ctx is done. Stop blocks until in-flight work has
// returned and must be safe to call on a worker that never ran.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
