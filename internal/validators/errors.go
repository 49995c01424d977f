// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTerm           = errors.New("term is required")
	ErrTermTooLong         = errors.New("term is too long")
	ErrEmptyDefinition     = errors.New("definition is required")
	ErrFieldTooLong        = errors.New("field is too long")
	ErrInvalidLanguage     = errors.New("invalid language tag")
	ErrInvalidVersion      = errors.New("invalid version")
	ErrUnexpectedTombstone = errors.New("deleted record cannot be written")
)
