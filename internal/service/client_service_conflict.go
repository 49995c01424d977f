// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lexiflow/internal/adapter"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/store"
	"github.com/MKhiriev/lexiflow/internal/validators"
	"github.com/MKhiriev/lexiflow/models"
)

// ResolutionKind selects how a conflict is settled.
type ResolutionKind string

const (
	// ResolveUseClient pushes the local copy over the server copy.
	ResolveUseClient ResolutionKind = "use_client"
	// ResolveUseServer overwrites the local copy with the server copy.
	ResolveUseServer ResolutionKind = "use_server"
	// ResolveUseCustom pushes a merged payload and stores it on both sides.
	ResolveUseCustom ResolutionKind = "use_custom"
	// ResolveDelete deletes the item on both sides.
	ResolveDelete ResolutionKind = "delete"
)

// Resolution is a caller's decision for one conflict.
type Resolution struct {
	Kind ResolutionKind
	// Merged is the payload for ResolveUseCustom.
	Merged models.ContentRecord
}

var (
	UseClient = Resolution{Kind: ResolveUseClient}
	UseServer = Resolution{Kind: ResolveUseServer}
	Delete    = Resolution{Kind: ResolveDelete}
)

// UseCustom returns a resolution that stores merged on both sides. Only the
// payload fields of merged are used.
func UseCustom(merged models.ContentRecord) Resolution {
	return Resolution{Kind: ResolveUseCustom, Merged: merged}
}

type clientConflictResolver struct {
	local     store.LocalRecordStore
	remote    adapter.ContentClient
	caller    *SessionCaller
	validator validators.Validator
	logger    *logger.Logger
}

// NewClientConflictResolver returns the resolver for conflicts surfaced by
// ClientSyncService.
func NewClientConflictResolver(local store.LocalRecordStore, remote adapter.ContentClient, caller *SessionCaller, validator validators.Validator, log *logger.Logger) ClientConflictResolver {
	return &clientConflictResolver{
		local:     local,
		remote:    remote,
		caller:    caller,
		validator: validator,
		logger:    log,
	}
}

func (r *clientConflictResolver) Resolve(ctx context.Context, conflict models.SyncConflict, resolution Resolution) error {
	var err error
	switch resolution.Kind {
	case ResolveUseClient:
		err = r.useClient(ctx, conflict)
	case ResolveUseServer:
		err = r.useServer(ctx, conflict)
	case ResolveUseCustom:
		err = r.useCustom(ctx, conflict, resolution.Merged)
	case ResolveDelete:
		err = r.deleteBoth(ctx, conflict.ItemID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownResolution, resolution.Kind)
	}

	if err != nil {
		r.logger.Warn().Err(err).
			Str("func", "clientConflictResolver.Resolve").
			Int64("id", conflict.ItemID).
			Str("resolution", string(resolution.Kind)).
			Msg("conflict left open")
		return fmt.Errorf("%w: item %d: %w", ErrResolutionFailed, conflict.ItemID, err)
	}
	return nil
}

func (r *clientConflictResolver) useClient(ctx context.Context, conflict models.SyncConflict) error {
	client, err := r.local.Lookup(ctx, conflict.ItemID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrRecordNotFound) && conflict.Client != nil:
		client = *conflict.Client
	default:
		return err
	}

	if client.IsDeleted {
		return r.deleteBoth(ctx, conflict.ItemID)
	}
	return r.pushOver(ctx, conflict, client)
}

func (r *clientConflictResolver) useServer(ctx context.Context, conflict models.SyncConflict) error {
	if conflict.ConflictType == models.ConflictServerDeleted {
		return r.local.Purge(ctx, conflict.ItemID)
	}

	server := conflict.Server
	if server == nil {
		fetched, err := CallWithSession(ctx, r.caller, func(ctx context.Context) (models.ContentRecord, error) {
			return r.remote.GetContent(ctx, conflict.ItemID)
		})
		if errors.Is(err, adapter.ErrNotFound) {
			return r.local.Purge(ctx, conflict.ItemID)
		}
		if err != nil {
			return err
		}
		server = &fetched
	}

	if server.IsDeleted {
		return r.local.Purge(ctx, conflict.ItemID)
	}
	return r.local.ApplyServer(ctx, *server)
}

func (r *clientConflictResolver) useCustom(ctx context.Context, conflict models.SyncConflict, merged models.ContentRecord) error {
	base := models.ContentRecord{ID: conflict.ItemID}
	if conflict.Client != nil {
		base = *conflict.Client
	}
	rec := base.WithPayload(merged).Normalize()
	rec.IsDeleted = false

	if err := r.validator.Validate(ctx, rec); err != nil {
		return err
	}
	return r.pushOver(ctx, conflict, rec)
}

// pushOver writes rec to the server on top of the server copy and stores
// the accepted result locally.
func (r *clientConflictResolver) pushOver(ctx context.Context, conflict models.SyncConflict, rec models.ContentRecord) error {
	if conflict.ConflictType == models.ConflictServerDeleted {
		created, err := CallWithSession(ctx, r.caller, func(ctx context.Context) (models.ContentRecord, error) {
			return r.remote.CreateContent(ctx, rec)
		})
		if err != nil {
			return err
		}
		return r.local.ReplaceID(ctx, conflict.ItemID, created)
	}

	rec.Version = conflict.ServerVersion
	updated, err := CallWithSession(ctx, r.caller, func(ctx context.Context) (models.ContentRecord, error) {
		return r.remote.UpdateContent(ctx, rec)
	})
	if err != nil {
		return err
	}
	return r.local.ApplyServer(ctx, updated)
}

func (r *clientConflictResolver) deleteBoth(ctx context.Context, id int64) error {
	err := CallWithSessionNoResult(ctx, r.caller, func(ctx context.Context) error {
		return r.remote.DeleteContent(ctx, id)
	})
	if err != nil && !errors.Is(err, adapter.ErrNotFound) {
		return err
	}
	return r.local.Purge(ctx, id)
}
