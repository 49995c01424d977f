// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("local storage error")

	// ErrRecordNotFound is returned when the requested row does not exist
	// (or, for Get, is a tombstone).
	ErrRecordNotFound = errors.New("content record was not found")

	// ErrUnknownStrategy is returned when the configured store strategy is
	// not supported.
	ErrUnknownStrategy = errors.New("unknown local store strategy")
)

// StorageError wraps an engine failure with the store operation it happened in.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) hold for any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// wrapErr wraps err as a StorageError unless it is nil or already a
// domain error callers match on directly.
func wrapErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrRecordNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
