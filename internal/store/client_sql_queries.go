// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lexiflow/models"
)

const (
	contentTable  = "content"
	metadataTable = "sync_metadata"
)

var contentColumns = []string{
	"id",
	"term",
	"definition",
	"example",
	"pronunciation",
	"language",
	"notes",
	"created_at",
	"updated_at",
	"version",
	"sync_status",
	"is_deleted",
}

// builder renders `?` placeholders as SQLite expects.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func contentValues(rec models.ContentRecord) []any {
	return []any{
		rec.ID,
		rec.Term,
		rec.Definition,
		rec.Example,
		rec.Pronunciation,
		rec.Language,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
		rec.Version,
		string(rec.SyncStatus),
		rec.IsDeleted,
	}
}

func searchPredicate(search string) sq.Sqlizer {
	pattern := likePattern(search)
	or := make(sq.Or, 0, len(searchColumns))
	for _, col := range searchColumns {
		or = append(or, sq.Expr("fold("+col+") LIKE ? ESCAPE '\\'", pattern))
	}
	return or
}

func selectContentByID(id int64, includeDeleted bool) (string, []any, error) {
	q := builder.Select(contentColumns...).
		From(contentTable).
		Where(sq.Eq{"id": id})
	if !includeDeleted {
		q = q.Where(sq.Eq{"is_deleted": false})
	}
	return q.ToSql()
}

func selectContentPage(query models.ListQuery) (string, []any, error) {
	q := builder.Select(contentColumns...).
		From(contentTable).
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("id DESC")
	if query.Search != "" {
		q = q.Where(searchPredicate(query.Search))
	}
	if query.Limit > 0 {
		q = q.Limit(uint64(query.Limit))
	} else if query.Offset > 0 {
		q = q.Limit(math.MaxInt64)
	}
	if query.Offset > 0 {
		q = q.Offset(uint64(query.Offset))
	}
	return q.ToSql()
}

func countContent(search string) (string, []any, error) {
	q := builder.Select("COUNT(*)").
		From(contentTable).
		Where(sq.Eq{"is_deleted": false})
	if search != "" {
		q = q.Where(searchPredicate(search))
	}
	return q.ToSql()
}

func selectMinContentID() (string, []any, error) {
	return builder.Select("COALESCE(MIN(id), 0)").From(contentTable).ToSql()
}

// upsertContent inserts rec or overwrites every column of the existing row.
func upsertContent(rec models.ContentRecord) (string, []any, error) {
	return builder.Insert(contentTable).
		Columns(contentColumns...).
		Values(contentValues(rec)...).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			term = excluded.term,
			definition = excluded.definition,
			example = excluded.example,
			pronunciation = excluded.pronunciation,
			language = excluded.language,
			notes = excluded.notes,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			version = excluded.version,
			sync_status = excluded.sync_status,
			is_deleted = excluded.is_deleted`).
		ToSql()
}

func markContentDeleted(id int64, now time.Time) (string, []any, error) {
	return builder.Update(contentTable).
		Set("is_deleted", true).
		Set("sync_status", string(models.SyncStatusDeleted)).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func markContentSynced(id int64) (string, []any, error) {
	return builder.Update(contentTable).
		Set("sync_status", string(models.SyncStatusSynced)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func deleteContent(id int64) (string, []any, error) {
	return builder.Delete(contentTable).Where(sq.Eq{"id": id}).ToSql()
}

func selectPendingChanges() (string, []any, error) {
	return builder.Select(contentColumns...).
		From(contentTable).
		Where(sq.Eq{"sync_status": []string{string(models.SyncStatusNew), string(models.SyncStatusModified)}}).
		OrderBy("updated_at ASC", "id ASC").
		ToSql()
}

func selectPendingDeletions() (string, []any, error) {
	return builder.Select("id").
		From(contentTable).
		Where(sq.Eq{"sync_status": string(models.SyncStatusDeleted)}).
		OrderBy("id ASC").
		ToSql()
}

func selectMetadata(key string) (string, []any, error) {
	return builder.Select("value").From(metadataTable).Where(sq.Eq{"key": key}).ToSql()
}

func upsertMetadata(key, value string) (string, []any, error) {
	return builder.Insert(metadataTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
}
