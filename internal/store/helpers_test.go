package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	puresqlite "github.com/glebarez/sqlite"
	"github.com/localnerve/raulo-crmdb/internal/logging"
	"github.com/localnerve/raulo-crmdb/internal/models"
	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingSaver keeps the JSON of every save per key
type recordingSaver struct {
	saves map[string][]string
	err   error
}

func newRecordingSaver() *recordingSaver {
	return &recordingSaver{saves: make(map[string][]string)}
}

func (r *recordingSaver) Save(key string, value any) error {
	if r.err != nil {
		return r.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.saves[key] = append(r.saves[key], string(raw))
	return nil
}

func (r *recordingSaver) count(key string) int {
	return len(r.saves[key])
}

func setupTestAdapter(t *testing.T) *persist.Adapter {
	t.Helper()
	db, err := gorm.Open(puresqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Snapshot{}), "Failed to migrate test database")

	return persist.NewAdapter(persist.NewGormBackend(db), "raulo_crm_", 0, logging.Discard())
}

func setupTestStore(t *testing.T, seeds Seeds) (*Store, *persist.Adapter) {
	t.Helper()
	adapter := setupTestAdapter(t)
	return New(adapter, seeds, logging.Discard()), adapter
}

var errWriteFailed = errors.New("write failed")

func ptr[T any](v T) *T {
	return &v
}

// failingBackend reads nothing and rejects every write
type failingBackend struct{}

func (failingBackend) Read(context.Context, string) ([]byte, error) { return nil, persist.ErrNotFound }
func (failingBackend) Write(context.Context, string, []byte) error  { return errWriteFailed }
func (failingBackend) Ping(context.Context) error                   { return nil }
