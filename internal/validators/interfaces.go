// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks content payloads before they are stored locally
// or pushed to the server.
//
// A [Validator] takes the value to check and, optionally, the names of the
// fields to restrict the check to. With no field names a default set is
// validated. Failures are returned as the sentinel errors in errors.go so
// callers can match them with errors.Is.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {
	// Validate validates obj and optionally restricts validation to the
	// named fields.
	Validate(ctx context.Context, obj any, fields ...string) error
}
