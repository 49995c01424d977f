// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// SyncStatus tracks whether a local row has diverged from the server and how.
// It is a local-only attribute and is never sent over the wire.
type SyncStatus string

const (
	// SyncStatusNew marks a row created on this device that the server has not
	// accepted yet. Such rows carry a negative placeholder ID.
	SyncStatusNew SyncStatus = "new"

	// SyncStatusModified marks a server-known row edited locally since the last
	// accepted push.
	SyncStatusModified SyncStatus = "modified"

	// SyncStatusSynced marks a row that matches the last server-acknowledged state.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusDeleted marks a tombstone: the row was deleted locally and is kept
	// until the server acknowledges the delete.
	SyncStatusDeleted SyncStatus = "deleted"
)

// IsPending reports whether the row carries a local change the server has not
// acknowledged yet (new, modified or deleted).
func (s SyncStatus) IsPending() bool {
	return s == SyncStatusNew || s == SyncStatusModified || s == SyncStatusDeleted
}

// ContentRecord is the unit of synchronization: one vocabulary entry.
//
// The sync engine only looks at identity (ID), the timestamps, Version,
// SyncStatus and IsDeleted. Term, Definition, Example, Pronunciation, Language
// and Notes are payload and are copied around verbatim.
type ContentRecord struct {
	// ID is assigned by the server. Rows created offline carry a negative
	// placeholder until the first successful push.
	ID int64 `json:"id"`

	Term          string `json:"term"`
	Definition    string `json:"definition"`
	Example       string `json:"example,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Language      string `json:"language,omitempty"`
	Notes         string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Version is an opaque concurrency token (UUID or server revision tag).
	Version string `json:"version"`

	SyncStatus SyncStatus `json:"-"`
	IsDeleted  bool       `json:"isDeleted,omitempty"`
}

// IsClientOrigin reports whether the record was created locally and has never
// been accepted by the server.
func (c ContentRecord) IsClientOrigin() bool {
	return c.ID < 0
}

// SearchableText returns the textual payload fields that List/Count match a
// search query against.
func (c ContentRecord) SearchableText() []string {
	return []string{c.Term, c.Definition, c.Example, c.Pronunciation, c.Notes}
}

// WithPayload returns a copy of c whose payload fields are taken from src.
// Identity, timestamps, version and sync bookkeeping are left untouched.
func (c ContentRecord) WithPayload(src ContentRecord) ContentRecord {
	c.Term = src.Term
	c.Definition = src.Definition
	c.Example = src.Example
	c.Pronunciation = src.Pronunciation
	c.Language = src.Language
	c.Notes = src.Notes
	return c
}

// Normalize trims surrounding whitespace from every payload field.
func (c ContentRecord) Normalize() ContentRecord {
	c.Term = strings.TrimSpace(c.Term)
	c.Definition = strings.TrimSpace(c.Definition)
	c.Example = strings.TrimSpace(c.Example)
	c.Pronunciation = strings.TrimSpace(c.Pronunciation)
	c.Language = strings.TrimSpace(c.Language)
	c.Notes = strings.TrimSpace(c.Notes)
	return c
}

// ListQuery describes a page of local content.
type ListQuery struct {
	Offset int
	Limit  int
	// Search, when non-empty, is matched case-insensitively against every
	// textual field with OR semantics.
	Search string
}
