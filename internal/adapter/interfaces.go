// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the LexiFlow content API.
//
// [ContentClient] hides the transport from the service layer. Every method
// follows one error contract:
//   - nil error: the server accepted the call;
//   - errors.Is(err, [ErrUnauthorized]): the session is no longer accepted;
//   - any other error: a failure, with [ErrTransport] marking the cases where
//     the server was never reached (network, timeout, local rate limit).
//
// Status codes are mapped to the sentinels in errors.go by mapHTTPError.
package adapter

import (
	"context"

	"github.com/MKhiriev/lexiflow/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/content_client_mock.go -package=mock

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty string means no usable token; the request is sent without one.
type TokenSource interface {
	CurrentToken() string
}

// ContentClient is the remote content API.
type ContentClient interface {
	// Login exchanges credentials for a session. When the server omits
	// expiresAt the expiry is read from the token's exp claim.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error)

	// Refresh exchanges token for a new session token. token is sent as is,
	// even if it is inside the refresh margin.
	Refresh(ctx context.Context, token string) (models.SessionToken, error)

	// ListContent fetches one page of content, optionally only items updated
	// after q.UpdatedSince. Server tombstones are returned with IsDeleted set.
	ListContent(ctx context.Context, q models.ContentQuery) (models.ContentPage, error)

	GetContent(ctx context.Context, id int64) (models.ContentRecord, error)

	// CreateContent posts a new item. rec.Version is sent as the
	// Idempotency-Key so a retried create is not applied twice.
	CreateContent(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error)

	// UpdateContent puts rec with rec.Version as the base version. A stale
	// base version yields [ErrConflict].
	UpdateContent(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error)

	// DeleteContent deletes an item. A missing item yields [ErrNotFound].
	DeleteContent(ctx context.Context, id int64) error

	// BulkSync pushes modified items and deletions in one request.
	BulkSync(ctx context.Context, req models.BulkSyncRequest) (models.BulkSyncResponse, error)
}
