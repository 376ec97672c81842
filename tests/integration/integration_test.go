package integration_test

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/localnerve/raulo-crmdb/internal/database"
	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/handlers"
	"github.com/localnerve/raulo-crmdb/internal/logging"
	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/localnerve/raulo-crmdb/internal/store"
	"github.com/localnerve/raulo-crmdb/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if !helpers.DockerAvailable(context.Background()) {
		t.Skip("Skipping integration test, docker is not available")
	}
}

// TestSnapshotBackends runs the store against real MariaDB and Redis containers
func TestSnapshotBackends(t *testing.T) {
	skipWithoutDocker(t)

	tc, err := helpers.CreateAllTestContainers(t)
	require.NoError(t, err)
	defer tc.Terminate(t)

	t.Run("MariaDB", func(t *testing.T) {
		runStoreRoundTrip(t, tc.Config("gorm"))
	})

	t.Run("Redis", func(t *testing.T) {
		runStoreRoundTrip(t, tc.Config("redis"))
	})
}

// TestWithPostgreSQL runs the gorm snapshot backend against a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	skipWithoutDocker(t)

	ctx := context.Background()

	image := os.Getenv("POSTGRES_IMAGE")
	if image == "" {
		image = "postgres:17-alpine"
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "testdb",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.DBType = "postgres"
	cfg.DBHost = host
	cfg.DBPort = port.Port()
	cfg.DBDatabase = "testdb"
	cfg.DBUser = "testuser"
	cfg.DBPassword = "testpass"

	runStoreRoundTrip(t, &cfg)
}

func runStoreRoundTrip(t *testing.T, cfg *config.Config) {
	t.Helper()

	cfg.StoreKeyPrefix = "it_" + strings.ReplaceAll(t.Name(), "/", "_") + "_"
	cfg.LogLevel = "warn"
	log := logging.New(cfg)

	backend, closeBackend, err := database.OpenBackend(cfg, log)
	require.NoError(t, err)
	defer func() { _ = closeBackend() }()

	require.NoError(t, backend.Ping(context.Background()))

	adapter := persist.NewAdapter(backend, cfg.StoreKeyPrefix, 5*time.Second, log)
	crm := store.New(adapter, store.DefaultSeeds(), log)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app.Group("/api"), crm, log)

	t.Run("CreateLeadOverHTTP", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(`{"id":"it-1","name":"Harbor Cafe","city":"Mumbai","category":"Cafes","phone":"9000000001"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		helpers.AssertStatus(t, resp, fiber.StatusCreated)
	})

	t.Run("SilentNoOpOnUnknownID", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/leads/does-not-exist", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		helpers.AssertChanged(t, resp, false)
	})

	var countryID string
	t.Run("AddFolder", func(t *testing.T) {
		node, ok, err := crm.AddFolder(store.RootFolderID, "Nepal", domain.FolderCountry)
		require.NoError(t, err)
		require.True(t, ok)
		countryID = node.ID
	})

	t.Run("ReloadFromBackend", func(t *testing.T) {
		reloaded := store.New(adapter, store.EmptySeeds(), log)

		lead, ok := reloaded.Lead("it-1")
		require.True(t, ok)
		assert.Equal(t, "Harbor Cafe", lead.Name)
		assert.Equal(t, domain.LeadStatusNew, lead.Status)
		assert.Len(t, reloaded.Leads(), len(store.DefaultSeeds().Leads)+1)

		node, ok := reloaded.FindFolder(countryID)
		require.True(t, ok)
		assert.Equal(t, "Nepal", node.Name)
		assert.Equal(t, domain.FolderCountry, node.Type)
	})

	if gb, ok := backend.(*persist.GormBackend); ok {
		t.Run("VersionBumpsOnWrite", func(t *testing.T) {
			key := cfg.StoreKeyPrefix + persist.KeyLeads
			before, err := gb.Version(context.Background(), key)
			require.NoError(t, err)

			_, err = crm.UpdateLead("it-1", domain.LeadPatch{Remarks: ptr("called back")})
			require.NoError(t, err)

			after, err := gb.Version(context.Background(), key)
			require.NoError(t, err)
			assert.Equal(t, before+1, after)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
