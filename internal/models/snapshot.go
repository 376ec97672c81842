// snapshot.go
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

package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Snapshot is one named, fully serialized piece of dashboard state
// (a collection or the folder tree). Every save overwrites SnapshotValue.
type Snapshot struct {
	SnapshotKey     string   `gorm:"primaryKey;size:255"`
	SnapshotValue   Document `gorm:"not null"`
	SnapshotVersion uint64   `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the table name for Snapshot
func (Snapshot) TableName() string {
	return "snapshots"
}

// Document is an encoded JSON snapshot stored in the column type native to
// each driver.
type Document struct {
	datatypes.JSON
}

// NewDocument wraps already encoded bytes
func NewDocument(raw []byte) Document {
	return Document{JSON: datatypes.JSON(raw)}
}

// Bytes returns the encoded document
func (d Document) Bytes() []byte {
	return []byte(d.JSON)
}

func (d Document) Value() (driver.Value, error) {
	return d.JSON.Value()
}

func (d *Document) Scan(value interface{}) error {
	return d.JSON.Scan(value)
}

// GormDBDataType picks a column type per driver; MSSQL has no json type.
func (Document) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlserver":
		return "NVARCHAR(MAX)"
	case "mysql", "sqlite":
		return "JSON"
	}
	return "TEXT"
}
