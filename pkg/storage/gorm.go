package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/glowshop-backend/pkg/db/models"
)

// Table stores values as rows of the cart_snapshots table.
type Table struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewTable builds a table-backed store. A zero ttl keeps rows forever.
func NewTable(db *gorm.DB, ttl time.Duration) *Table {
	return &Table{db: db, ttl: ttl, now: time.Now}
}

func (t *Table) Get(ctx context.Context, key string) ([]byte, error) {
	var row models.CartSnapshot
	err := t.db.WithContext(ctx).Where("snapshot_key = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if row.ExpiresAt != nil && !row.ExpiresAt.After(t.now()) {
		return nil, ErrNotFound
	}
	return []byte(row.Payload), nil
}

func (t *Table) Set(ctx context.Context, key string, value []byte) error {
	row := models.CartSnapshot{
		Key:       key,
		Payload:   string(value),
		UpdatedAt: t.now().UTC(),
	}
	if t.ttl > 0 {
		expires := t.now().Add(t.ttl).UTC()
		row.ExpiresAt = &expires
	}
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&row).Error
}

func (t *Table) Delete(ctx context.Context, key string) error {
	return t.db.WithContext(ctx).Where("snapshot_key = ?", key).Delete(&models.CartSnapshot{}).Error
}

// PurgeExpired removes rows whose TTL elapsed and reports how many were deleted.
func (t *Table) PurgeExpired(ctx context.Context) (int64, error) {
	res := t.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", t.now().UTC()).
		Delete(&models.CartSnapshot{})
	return res.RowsAffected, res.Error
}
