package persist_test

import (
	"context"
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB opens dialector without connecting and records the SQL of every create
func dryRunDB(t *testing.T, dialector gorm.Dialector) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(dialector, &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Create().After("gorm:create").Register("crm:capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	return db, &captured
}

func TestGormBackendUpsertSQL(t *testing.T) {
	tests := []struct {
		name      string
		dialector gorm.Dialector
		expected  []string
	}{
		{
			name: "PostgreSQL",
			dialector: postgres.New(postgres.Config{
				DSN: "host=localhost user=crm password=crm dbname=crm port=5432 sslmode=disable",
			}),
			expected: []string{
				`ON CONFLICT ("snapshot_key") DO UPDATE SET`,
				`"snapshot_version"=snapshots.snapshot_version + 1`,
			},
		},
		{
			name: "MySQL",
			dialector: mysql.New(mysql.Config{
				DSN:                       "crm:crm@tcp(localhost:3306)/crm?parseTime=true",
				SkipInitializeWithVersion: true,
			}),
			expected: []string{
				"ON DUPLICATE KEY UPDATE",
				"`snapshot_version`=snapshots.snapshot_version + 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, captured := dryRunDB(t, tt.dialector)
			backend := persist.NewGormBackend(db)

			require.NoError(t, backend.Write(context.Background(), "crm:leads", []byte(`[]`)))
			for _, fragment := range tt.expected {
				assert.Contains(t, *captured, fragment)
			}
			assert.NotContains(t, *captured, "=snapshot_version + 1")
		})
	}
}

func TestGormBackendVersionAcrossKeys(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewGormBackend(setupTestDB(t))

	require.NoError(t, backend.Write(ctx, "a", []byte(`[]`)))
	require.NoError(t, backend.Write(ctx, "a", []byte(`[1]`)))
	require.NoError(t, backend.Write(ctx, "b", []byte(`[]`)))

	version, err := backend.Version(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)

	version, err = backend.Version(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	value, err := backend.Read(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, string(value))
}
