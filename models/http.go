// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Wire types for the content API. Each endpoint has a fixed response schema;
// fields the server may omit are pointers so "absent" stays distinguishable
// from a zero value.

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	User      *User      `json:"user,omitempty"`
	Message   *string    `json:"message,omitempty"`
}

// RefreshResponse is the body returned by POST /auth/refresh.
type RefreshResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// LoginResult is what the client hands back to the service layer after a
// successful login.
type LoginResult struct {
	Token SessionToken
	User  User
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// ContentListResponse is the body returned by GET /content.
type ContentListResponse struct {
	Data       []ContentRecord `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// ContentResponse is the body returned by GET/POST/PUT on a single item.
type ContentResponse struct {
	Data *ContentRecord `json:"data"`
}

// ContentQuery selects a page of server content.
type ContentQuery struct {
	Page     int
	PageSize int
	// UpdatedSince, when non-zero, restricts the page to items changed after it.
	UpdatedSince time.Time
}

// ContentPage is a decoded page of server content.
type ContentPage struct {
	Items      []ContentRecord
	Pagination Pagination
}

// HasMore reports whether a page after this one exists.
func (p ContentPage) HasMore() bool {
	return p.Pagination.Page < p.Pagination.TotalPages
}

// ContentWriteRequest is the body of POST /content and PUT /content/{id}.
// Version carries the client's base version for optimistic concurrency.
type ContentWriteRequest struct {
	Term          string `json:"term"`
	Definition    string `json:"definition"`
	Example       string `json:"example,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Language      string `json:"language,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Version       string `json:"version,omitempty"`
}

// NewContentWriteRequest builds a write request from a local record.
func NewContentWriteRequest(rec ContentRecord) ContentWriteRequest {
	return ContentWriteRequest{
		Term:          rec.Term,
		Definition:    rec.Definition,
		Example:       rec.Example,
		Pronunciation: rec.Pronunciation,
		Language:      rec.Language,
		Notes:         rec.Notes,
		Version:       rec.Version,
	}
}

// BulkSyncRequest is the body of POST /sync.
type BulkSyncRequest struct {
	LastSyncTime   time.Time       `json:"lastSyncTime"`
	ModifiedItems  []ContentRecord `json:"modifiedItems"`
	DeletedItemIDs []int64         `json:"deletedItemIds"`
	DeviceID       string          `json:"deviceId"`
}

// BulkSyncConflict is one item the server refused during POST /sync.
type BulkSyncConflict struct {
	ItemID          int64      `json:"itemId"`
	ServerVersion   string     `json:"serverVersion"`
	ServerUpdatedAt *time.Time `json:"serverUpdatedAt,omitempty"`
	Reason          *string    `json:"reason,omitempty"`
}

// BulkSyncResponse is the body returned by POST /sync.
type BulkSyncResponse struct {
	SyncedAt     time.Time          `json:"syncedAt"`
	AddedCount   int                `json:"addedCount"`
	UpdatedCount int                `json:"updatedCount"`
	DeletedCount int                `json:"deletedCount"`
	Conflicts    []BulkSyncConflict `json:"conflicts"`
}
