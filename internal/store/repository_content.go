// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/models"
)

// contentRepository is the "direct" LocalRecordStore: database/sql with
// squirrel-built statements.
type contentRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewContentRepository returns the direct-query LocalRecordStore over db.
// db must already be migrated.
func NewContentRepository(db *DB, log *logger.Logger) LocalRecordStore {
	return &contentRepository{
		DB:     db,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(s rowScanner) (models.ContentRecord, error) {
	var (
		rec    models.ContentRecord
		status string
	)
	err := s.Scan(
		&rec.ID,
		&rec.Term,
		&rec.Definition,
		&rec.Example,
		&rec.Pronunciation,
		&rec.Language,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.Version,
		&status,
		&rec.IsDeleted,
	)
	rec.SyncStatus = models.SyncStatus(status)
	return rec, err
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *contentRepository) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "contentRepository."+op).Msg("failed to begin transaction")
		return wrapErr(op, err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Err(rbErr).Str("func", "contentRepository."+op).Msg("failed to rollback transaction")
		}
		return wrapErr(op, err)
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "contentRepository."+op).Msg("failed to commit transaction")
		return wrapErr(op, err)
	}
	return nil
}

func (r *contentRepository) getOne(ctx context.Context, q queryer, id int64, includeDeleted bool) (models.ContentRecord, error) {
	query, args, err := selectContentByID(id, includeDeleted)
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("build select: %w", err)
	}

	rec, err := scanContent(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContentRecord{}, ErrRecordNotFound
	}
	return rec, err
}

func (r *contentRepository) queryMany(ctx context.Context, query string, args []any) ([]models.ContentRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.ContentRecord, 0)
	for rows.Next() {
		rec, scanErr := scanContent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, rec)
	}

	return items, rows.Err()
}

func (r *contentRepository) Get(ctx context.Context, id int64) (models.ContentRecord, error) {
	rec, err := r.getOne(ctx, r.DB, id, false)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		r.logger.Err(err).Str("func", "contentRepository.Get").Int64("id", id).Msg("failed to get content")
	}
	return rec, wrapErr("get", err)
}

func (r *contentRepository) Lookup(ctx context.Context, id int64) (models.ContentRecord, error) {
	rec, err := r.getOne(ctx, r.DB, id, true)
	return rec, wrapErr("lookup", err)
}

func (r *contentRepository) List(ctx context.Context, q models.ListQuery) ([]models.ContentRecord, error) {
	query, args, err := selectContentPage(q)
	if err != nil {
		return nil, wrapErr("list", err)
	}

	items, err := r.queryMany(ctx, query, args)
	if err != nil {
		r.logger.Err(err).Str("func", "contentRepository.List").Str("search", q.Search).Msg("failed to list content")
		return nil, wrapErr("list", err)
	}
	return items, nil
}

func (r *contentRepository) Count(ctx context.Context, search string) (int, error) {
	query, args, err := countContent(search)
	if err != nil {
		return 0, wrapErr("count", err)
	}

	var n int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		r.logger.Err(err).Str("func", "contentRepository.Count").Msg("failed to count content")
		return 0, wrapErr("count", err)
	}
	return n, nil
}

func (r *contentRepository) Upsert(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	var stored models.ContentRecord

	err := r.inTx(ctx, "upsert", func(tx *sql.Tx) error {
		var existing *models.ContentRecord
		if rec.ID != 0 {
			cur, err := r.getOne(ctx, tx, rec.ID, true)
			switch {
			case err == nil:
				existing = &cur
			case !errors.Is(err, ErrRecordNotFound):
				return err
			}
		}

		row, err := prepareUpsert(rec, existing, r.now(), func() (int64, error) {
			return r.placeholderID(ctx, tx)
		})
		if err != nil {
			return err
		}

		query, args, err := upsertContent(row)
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		stored = row
		return nil
	})
	if err != nil {
		r.logger.Err(err).Str("func", "contentRepository.Upsert").Int64("id", rec.ID).Msg("failed to upsert content")
		return models.ContentRecord{}, err
	}

	return stored, nil
}

func (r *contentRepository) placeholderID(ctx context.Context, q queryer) (int64, error) {
	query, args, err := selectMinContentID()
	if err != nil {
		return 0, fmt.Errorf("build min id: %w", err)
	}

	var minID int64
	if err = q.QueryRowContext(ctx, query, args...).Scan(&minID); err != nil {
		return 0, err
	}
	return nextPlaceholderID(minID), nil
}

// execOne runs a single-row statement and maps zero affected rows to
// ErrRecordNotFound.
func (r *contentRepository) execOne(ctx context.Context, op string, query string, args []any, buildErr error) error {
	if buildErr != nil {
		return wrapErr(op, buildErr)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "contentRepository."+op).Msg("failed to execute statement")
		return wrapErr(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) MarkDeleted(ctx context.Context, id int64) error {
	query, args, err := markContentDeleted(id, r.now())
	return r.execOne(ctx, "markDeleted", query, args, err)
}

func (r *contentRepository) MarkSynced(ctx context.Context, id int64) error {
	query, args, err := markContentSynced(id)
	return r.execOne(ctx, "markSynced", query, args, err)
}

func (r *contentRepository) Purge(ctx context.Context, id int64) error {
	query, args, err := deleteContent(id)
	if err != nil {
		return wrapErr("purge", err)
	}
	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "contentRepository.Purge").Int64("id", id).Msg("failed to purge content")
		return wrapErr("purge", err)
	}
	return nil
}

func (r *contentRepository) PendingChanges(ctx context.Context) ([]models.ContentRecord, error) {
	query, args, err := selectPendingChanges()
	if err != nil {
		return nil, wrapErr("pendingChanges", err)
	}

	items, err := r.queryMany(ctx, query, args)
	if err != nil {
		r.logger.Err(err).Str("func", "contentRepository.PendingChanges").Msg("failed to query pending changes")
		return nil, wrapErr("pendingChanges", err)
	}
	return items, nil
}

func (r *contentRepository) PendingDeletions(ctx context.Context) ([]int64, error) {
	query, args, err := selectPendingDeletions()
	if err != nil {
		return nil, wrapErr("pendingDeletions", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "contentRepository.PendingDeletions").Msg("failed to query pending deletions")
		return nil, wrapErr("pendingDeletions", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, wrapErr("pendingDeletions", err)
		}
		ids = append(ids, id)
	}

	return ids, wrapErr("pendingDeletions", rows.Err())
}

func (r *contentRepository) ApplyServer(ctx context.Context, rec models.ContentRecord) error {
	query, args, err := upsertContent(asServerRow(rec))
	if err != nil {
		return wrapErr("applyServer", err)
	}
	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "contentRepository.ApplyServer").Int64("id", rec.ID).Msg("failed to apply server content")
		return wrapErr("applyServer", err)
	}
	return nil
}

func (r *contentRepository) ReplaceID(ctx context.Context, oldID int64, rec models.ContentRecord) error {
	err := r.inTx(ctx, "replaceID", func(tx *sql.Tx) error {
		if oldID != rec.ID {
			query, args, err := deleteContent(oldID)
			if err != nil {
				return fmt.Errorf("build delete: %w", err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		query, args, err := upsertContent(asServerRow(rec))
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "contentRepository.ReplaceID").
			Int64("old_id", oldID).
			Int64("new_id", rec.ID).
			Msg("failed to replace placeholder id")
	}
	return err
}

func (r *contentRepository) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	query, args, err := selectMetadata(models.SyncMetadataLastSyncTime)
	if err != nil {
		return time.Time{}, wrapErr("getLastSyncTime", err)
	}

	var value string
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, wrapErr("getLastSyncTime", err)
	}

	t, err := parseWatermark(value)
	return t, wrapErr("getLastSyncTime", err)
}

func (r *contentRepository) SetLastSyncTime(ctx context.Context, t time.Time) error {
	query, args, err := upsertMetadata(models.SyncMetadataLastSyncTime, formatWatermark(t))
	if err != nil {
		return wrapErr("setLastSyncTime", err)
	}
	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "contentRepository.SetLastSyncTime").Msg("failed to store watermark")
		return wrapErr("setLastSyncTime", err)
	}
	return nil
}

func (r *contentRepository) Close() error {
	return r.DB.Close()
}
