// This file starts the MariaDB and Redis containers the snapshot backends are
// tested against. It is shared by the integration tests and the standalone
// cmd/testcontainers executable, which passes a nil *testing.T.
//

package helpers

import (
	"context"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultDBImage    = "mariadb:11.4"
	defaultRedisImage = "redis:7-alpine"
	dbAlias           = "crmdb"
	redisAlias        = "redis"
)

type TestContainers struct {
	Network        *testcontainers.DockerNetwork
	DBContainer    testcontainers.Container
	RedisContainer testcontainers.Container

	// Host side addresses of the mapped ports
	DBHost    string
	DBPort    string
	RedisAddr string
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// Config returns a configuration pointing both snapshot backends at the containers
func (tc *TestContainers) Config(backend string) *config.Config {
	cfg := config.Defaults()
	cfg.DBType = "mariadb"
	cfg.DBHost = tc.DBHost
	cfg.DBPort = tc.DBPort
	cfg.DBDatabase = getEnv("DB_DATABASE", "crm")
	cfg.DBUser = getEnv("DB_USER", "crm")
	cfg.DBPassword = getEnv("DB_PASSWORD", "crm-secret")
	cfg.StoreBackend = backend
	cfg.RedisAddr = tc.RedisAddr
	return &cfg
}

// DockerAvailable reports whether a docker daemon answers on the configured socket
func DockerAvailable(ctx context.Context) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err == nil
}

func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}
	testContainers.Network = nw
	networkName := nw.Name

	// Keep database files in memory
	tmpfs := func(hostConfig *container.HostConfig) {
		hostConfig.Tmpfs = map[string]string{"/var/lib/mysql": "rw"}
	}

	tcpDBPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("create database port: %w", err)
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("DB_IMAGE", defaultDBImage),
			ExposedPorts: []string{string(tcpDBPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": getEnv("DB_ROOT_PASSWORD", "root-secret"),
				"MARIADB_DATABASE":      getEnv("DB_DATABASE", "crm"),
				"MARIADB_USER":          getEnv("DB_USER", "crm"),
				"MARIADB_PASSWORD":      getEnv("DB_PASSWORD", "crm-secret"),
			},
			HostConfigModifier: tmpfs,
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(tcpDBPort),
				wait.ForLog("ready for connections").WithOccurrence(2),
			).WithDeadline(90 * time.Second),
			Networks: []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("start MariaDB: %w", err)
	}
	testContainers.DBContainer = dbContainer

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("resolve MariaDB host: %w", err)
	}
	dbPort, err := dbContainer.MappedPort(ctx, tcpDBPort)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("resolve MariaDB port: %w", err)
	}
	testContainers.DBHost = dbHost
	testContainers.DBPort = dbPort.Port()
	logMessage(t, "DB_HOST=%s DB_PORT=%s", dbHost, dbPort.Port())

	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("create redis port: %w", err)
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("REDIS_IMAGE", defaultRedisImage),
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {redisAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("start Redis: %w", err)
	}
	testContainers.RedisContainer = redisContainer

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("resolve Redis host: %w", err)
	}
	redisPort, err := redisContainer.MappedPort(ctx, tcpRedisPort)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("resolve Redis port: %w", err)
	}
	testContainers.RedisAddr = net.JoinHostPort(redisHost, redisPort.Port())
	logMessage(t, "REDIS_ADDR=%s", testContainers.RedisAddr)

	return testContainers, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
