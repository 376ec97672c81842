// gorm_backend.go
//
// Local lead-organization store for the Raulo CRM dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of raulo-crmdb.
// raulo-crmdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// raulo-crmdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with raulo-crmdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/raulo-crmdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// versionBump is table qualified; postgres rejects the bare column as ambiguous
// with the excluded row inside ON CONFLICT DO UPDATE
var versionBump = models.Snapshot{}.TableName() + ".snapshot_version + 1"

// GormBackend keeps one snapshots row per key
type GormBackend struct {
	DB *gorm.DB
}

// NewGormBackend wraps a migrated database
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{DB: db}
}

// Read returns the stored bytes for key, or ErrNotFound
func (b *GormBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var snap models.Snapshot
	err := b.DB.WithContext(ctx).
		Session(&gorm.Session{Logger: b.DB.Logger.LogMode(logger.Silent)}).
		Where("snapshot_key = ?", key).
		First(&snap).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}

	return snap.SnapshotValue.Bytes(), nil
}

// Write upserts the entry and bumps its version
func (b *GormBackend) Write(ctx context.Context, key string, value []byte) error {
	snap := models.Snapshot{
		SnapshotKey:     key,
		SnapshotValue:   models.NewDocument(value),
		SnapshotVersion: 1,
	}

	err := b.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"snapshot_value":   snap.SnapshotValue,
				"snapshot_version": gorm.Expr(versionBump),
				"updated_at":       time.Now(),
			}),
		}).
		Create(&snap).Error
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}

	return nil
}

// Version returns how many times key has been written, 0 when absent
func (b *GormBackend) Version(ctx context.Context, key string) (uint64, error) {
	var snap models.Snapshot
	err := b.DB.WithContext(ctx).
		Session(&gorm.Session{Logger: b.DB.Logger.LogMode(logger.Silent)}).
		Select("snapshot_version").
		Where("snapshot_key = ?", key).
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return snap.SnapshotVersion, nil
}

// Ping checks database reachability
func (b *GormBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
