package main

import (
	"flag"
	"fmt"
	"log"

	puresqlite "github.com/glebarez/sqlite"
	"github.com/localnerve/raulo-crmdb/internal/models"
	"gorm.io/gorm"
)

// Prints the snapshot table schema and the stored snapshots of a sqlite store.
// Without -db it inspects a fresh in-memory database.
func main() {
	path := flag.String("db", ":memory:", "sqlite database file")
	flag.Parse()

	db, err := gorm.Open(puresqlite.Open(*path), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&models.Snapshot{}); err != nil {
		log.Fatal(err)
	}

	var schema string
	db.Raw("SELECT sql FROM sqlite_master WHERE type='table' AND name = ?", models.Snapshot{}.TableName()).Scan(&schema)
	fmt.Printf("=== Table: %s ===\n%s\n", models.Snapshot{}.TableName(), schema)

	var snapshots []models.Snapshot
	if err := db.Order("snapshot_key").Find(&snapshots).Error; err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\n=== Snapshots (%d) ===\n", len(snapshots))
	for _, snap := range snapshots {
		fmt.Printf("%-32s version=%-6d bytes=%-8d updated=%s\n",
			snap.SnapshotKey, snap.SnapshotVersion, len(snap.SnapshotValue.Bytes()), snap.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}
