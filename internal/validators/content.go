// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/lexiflow/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldTerm          = "term"
	FieldDefinition    = "definition"
	FieldExample       = "example"
	FieldPronunciation = "pronunciation"
	FieldLanguage      = "language"
	FieldNotes         = "notes"
	FieldVersion       = "version"
	FieldTombstone     = "tombstone"
)

// Length limits, in runes.
const (
	MaxTermLength       = 200
	MaxDefinitionLength = 4000
	MaxTextLength       = 4000
	MaxLanguageLength   = 16
	MaxVersionLength    = 128
)

var defaultContentFields = []string{
	FieldTerm, FieldDefinition, FieldExample, FieldPronunciation,
	FieldLanguage, FieldNotes, FieldVersion, FieldTombstone,
}

// ContentValidator checks content records before they are written locally or
// pushed to the server. Payload fields are validated after trimming.
type ContentValidator struct{}

// NewContentValidator constructs a ContentValidator.
func NewContentValidator() Validator {
	return &ContentValidator{}
}

// Validate accepts models.ContentRecord, models.ContentWriteRequest and
// pointers to both. Returns ErrUnsupportedType for anything else.
func (v *ContentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ContentRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.ContentRecord:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateRecord(ctx, *value, fields...)
	case models.ContentWriteRequest:
		return v.validateWriteRequest(ctx, value, fields...)
	case *models.ContentWriteRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateWriteRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ContentValidator) validateRecord(_ context.Context, rec models.ContentRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultContentFields
	}

	rec = rec.Normalize()
	for _, f := range fields {
		var err error
		switch f {
		case FieldTerm:
			err = checkTerm(rec.Term)
		case FieldDefinition:
			err = checkDefinition(rec.Definition)
		case FieldExample:
			err = checkText(FieldExample, rec.Example)
		case FieldPronunciation:
			err = checkText(FieldPronunciation, rec.Pronunciation)
		case FieldNotes:
			err = checkText(FieldNotes, rec.Notes)
		case FieldLanguage:
			err = checkLanguage(rec.Language)
		case FieldVersion:
			err = checkVersion(rec.Version)
		case FieldTombstone:
			if rec.IsDeleted {
				err = ErrUnexpectedTombstone
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *ContentValidator) validateWriteRequest(ctx context.Context, req models.ContentWriteRequest, fields ...string) error {
	rec := models.ContentRecord{Version: req.Version}.WithPayload(models.ContentRecord{
		Term:          req.Term,
		Definition:    req.Definition,
		Example:       req.Example,
		Pronunciation: req.Pronunciation,
		Language:      req.Language,
		Notes:         req.Notes,
	})
	return v.validateRecord(ctx, rec, fields...)
}

func checkTerm(term string) error {
	if term == "" {
		return ErrEmptyTerm
	}
	if utf8.RuneCountInString(term) > MaxTermLength {
		return ErrTermTooLong
	}
	return nil
}

func checkDefinition(def string) error {
	if def == "" {
		return ErrEmptyDefinition
	}
	if utf8.RuneCountInString(def) > MaxDefinitionLength {
		return fmt.Errorf("%w: %s", ErrFieldTooLong, FieldDefinition)
	}
	return nil
}

func checkText(field, s string) error {
	if utf8.RuneCountInString(s) > MaxTextLength {
		return fmt.Errorf("%w: %s", ErrFieldTooLong, field)
	}
	return nil
}

// checkLanguage accepts an empty tag or a BCP 47 shaped one such as "en" or
// "pt-BR".
func checkLanguage(tag string) error {
	if tag == "" {
		return nil
	}
	if len(tag) > MaxLanguageLength {
		return ErrInvalidLanguage
	}
	for _, part := range strings.Split(tag, "-") {
		if part == "" || len(part) > 8 {
			return ErrInvalidLanguage
		}
		for _, r := range part {
			if !isASCIIAlnum(r) {
				return ErrInvalidLanguage
			}
		}
	}
	return nil
}

func checkVersion(version string) error {
	if len(version) > MaxVersionLength || strings.ContainsAny(version, " \t\r\n") {
		return ErrInvalidVersion
	}
	return nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
