// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/models"
)

// contentRow is the gorm mapping of the content table. Timestamps are owned
// by the sync engine, so gorm's auto-time tracking is off.
type contentRow struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Term          string    `gorm:"column:term"`
	Definition    string    `gorm:"column:definition"`
	Example       string    `gorm:"column:example"`
	Pronunciation string    `gorm:"column:pronunciation"`
	Language      string    `gorm:"column:language"`
	Notes         string    `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
	Version       string    `gorm:"column:version"`
	SyncStatus    string    `gorm:"column:sync_status"`
	IsDeleted     bool      `gorm:"column:is_deleted"`
}

func (contentRow) TableName() string { return contentTable }

type metadataRow struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (metadataRow) TableName() string { return metadataTable }

func toContentRow(rec models.ContentRecord) contentRow {
	return contentRow{
		ID:            rec.ID,
		Term:          rec.Term,
		Definition:    rec.Definition,
		Example:       rec.Example,
		Pronunciation: rec.Pronunciation,
		Language:      rec.Language,
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		Version:       rec.Version,
		SyncStatus:    string(rec.SyncStatus),
		IsDeleted:     rec.IsDeleted,
	}
}

func (r contentRow) toModel() models.ContentRecord {
	return models.ContentRecord{
		ID:            r.ID,
		Term:          r.Term,
		Definition:    r.Definition,
		Example:       r.Example,
		Pronunciation: r.Pronunciation,
		Language:      r.Language,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Version:       r.Version,
		SyncStatus:    models.SyncStatus(r.SyncStatus),
		IsDeleted:     r.IsDeleted,
	}
}

// upsertAll overwrites every non-key column on id conflict.
var upsertAll = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	DoUpdates: clause.AssignmentColumns(contentColumns[1:]),
}

// gormContentRepository is the "repository" LocalRecordStore backed by gorm.
// It shares the goose-migrated schema and connection with the direct store.
type gormContentRepository struct {
	db     *gorm.DB
	sqlDB  *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewGormContentRepository wraps the already migrated db in gorm.
func NewGormContentRepository(db *DB, log *logger.Logger) (LocalRecordStore, error) {
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{Conn: db.DB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Err(err).Str("func", "NewGormContentRepository").Msg("failed to open gorm session")
		return nil, wrapErr("open", err)
	}

	return &gormContentRepository{
		db:     gdb,
		sqlDB:  db,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func liveContent(tx *gorm.DB) *gorm.DB {
	return tx.Model(&contentRow{}).Where("is_deleted = ?", false)
}

func withSearch(tx *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return tx
	}
	pattern := likePattern(search)
	exprs := make([]string, 0, len(searchColumns))
	args := make([]any, 0, len(searchColumns))
	for _, col := range searchColumns {
		exprs = append(exprs, "fold("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return tx.Where("("+strings.Join(exprs, " OR ")+")", args...)
}

func (g *gormContentRepository) take(tx *gorm.DB, id int64, includeDeleted bool) (models.ContentRecord, error) {
	q := tx.Model(&contentRow{}).Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	var row contentRow
	err := q.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ContentRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return models.ContentRecord{}, err
	}
	return row.toModel(), nil
}

func (g *gormContentRepository) Get(ctx context.Context, id int64) (models.ContentRecord, error) {
	rec, err := g.take(g.db.WithContext(ctx), id, false)
	return rec, wrapErr("get", err)
}

func (g *gormContentRepository) Lookup(ctx context.Context, id int64) (models.ContentRecord, error) {
	rec, err := g.take(g.db.WithContext(ctx), id, true)
	return rec, wrapErr("lookup", err)
}

func (g *gormContentRepository) List(ctx context.Context, q models.ListQuery) ([]models.ContentRecord, error) {
	tx := withSearch(liveContent(g.db.WithContext(ctx)), q.Search).Order("id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []contentRow
	if err := tx.Find(&rows).Error; err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.List").Msg("failed to list content")
		return nil, wrapErr("list", err)
	}

	items := make([]models.ContentRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}

func (g *gormContentRepository) Count(ctx context.Context, search string) (int, error) {
	var n int64
	if err := withSearch(liveContent(g.db.WithContext(ctx)), search).Count(&n).Error; err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.Count").Msg("failed to count content")
		return 0, wrapErr("count", err)
	}
	return int(n), nil
}

func (g *gormContentRepository) Upsert(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	var stored models.ContentRecord

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing *models.ContentRecord
		if rec.ID != 0 {
			cur, err := g.take(tx, rec.ID, true)
			switch {
			case err == nil:
				existing = &cur
			case !errors.Is(err, ErrRecordNotFound):
				return err
			}
		}

		row, err := prepareUpsert(rec, existing, g.now(), func() (int64, error) {
			var minID int64
			if err := tx.Model(&contentRow{}).Select("COALESCE(MIN(id), 0)").Scan(&minID).Error; err != nil {
				return 0, err
			}
			return nextPlaceholderID(minID), nil
		})
		if err != nil {
			return err
		}

		dbRow := toContentRow(row)
		if err = tx.Clauses(upsertAll).Create(&dbRow).Error; err != nil {
			return err
		}

		stored = row
		return nil
	})
	if err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.Upsert").Int64("id", rec.ID).Msg("failed to upsert content")
		return models.ContentRecord{}, wrapErr("upsert", err)
	}

	return stored, nil
}

func (g *gormContentRepository) updateOne(ctx context.Context, op string, id int64, values map[string]any) error {
	res := g.db.WithContext(ctx).Model(&contentRow{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		g.logger.Err(res.Error).Str("func", "gormContentRepository."+op).Int64("id", id).Msg("failed to update content")
		return wrapErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (g *gormContentRepository) MarkDeleted(ctx context.Context, id int64) error {
	return g.updateOne(ctx, "markDeleted", id, map[string]any{
		"is_deleted":  true,
		"sync_status": string(models.SyncStatusDeleted),
		"updated_at":  g.now(),
	})
}

func (g *gormContentRepository) MarkSynced(ctx context.Context, id int64) error {
	return g.updateOne(ctx, "markSynced", id, map[string]any{
		"sync_status": string(models.SyncStatusSynced),
	})
}

func (g *gormContentRepository) Purge(ctx context.Context, id int64) error {
	if err := g.db.WithContext(ctx).Where("id = ?", id).Delete(&contentRow{}).Error; err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.Purge").Int64("id", id).Msg("failed to purge content")
		return wrapErr("purge", err)
	}
	return nil
}

func (g *gormContentRepository) PendingChanges(ctx context.Context) ([]models.ContentRecord, error) {
	var rows []contentRow
	err := g.db.WithContext(ctx).
		Where("sync_status IN ?", []string{string(models.SyncStatusNew), string(models.SyncStatusModified)}).
		Order("updated_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.PendingChanges").Msg("failed to query pending changes")
		return nil, wrapErr("pendingChanges", err)
	}

	items := make([]models.ContentRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}

func (g *gormContentRepository) PendingDeletions(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0)
	err := g.db.WithContext(ctx).Model(&contentRow{}).
		Where("sync_status = ?", string(models.SyncStatusDeleted)).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.PendingDeletions").Msg("failed to query pending deletions")
		return nil, wrapErr("pendingDeletions", err)
	}
	return ids, nil
}

func (g *gormContentRepository) ApplyServer(ctx context.Context, rec models.ContentRecord) error {
	row := toContentRow(asServerRow(rec))
	if err := g.db.WithContext(ctx).Clauses(upsertAll).Create(&row).Error; err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.ApplyServer").Int64("id", rec.ID).Msg("failed to apply server content")
		return wrapErr("applyServer", err)
	}
	return nil
}

func (g *gormContentRepository) ReplaceID(ctx context.Context, oldID int64, rec models.ContentRecord) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if oldID != rec.ID {
			if err := tx.Where("id = ?", oldID).Delete(&contentRow{}).Error; err != nil {
				return err
			}
		}
		row := toContentRow(asServerRow(rec))
		return tx.Clauses(upsertAll).Create(&row).Error
	})
	if err != nil {
		g.logger.Err(err).
			Str("func", "gormContentRepository.ReplaceID").
			Int64("old_id", oldID).
			Int64("new_id", rec.ID).
			Msg("failed to replace placeholder id")
		return wrapErr("replaceID", err)
	}
	return nil
}

func (g *gormContentRepository) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	var row metadataRow
	err := g.db.WithContext(ctx).Where("key = ?", models.SyncMetadataLastSyncTime).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, wrapErr("getLastSyncTime", err)
	}

	t, err := parseWatermark(row.Value)
	return t, wrapErr("getLastSyncTime", err)
}

func (g *gormContentRepository) SetLastSyncTime(ctx context.Context, t time.Time) error {
	row := metadataRow{Key: models.SyncMetadataLastSyncTime, Value: formatWatermark(t)}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		g.logger.Err(err).Str("func", "gormContentRepository.SetLastSyncTime").Msg("failed to store watermark")
		return wrapErr("setLastSyncTime", err)
	}
	return nil
}

func (g *gormContentRepository) Close() error {
	return g.sqlDB.Close()
}
