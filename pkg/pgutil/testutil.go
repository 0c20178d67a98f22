package pgutil

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"go.uber.org/zap/zaptest"

	"github.com/chainsafe/bitsave-middleware/pkg/config"
)

const (
	testImage    = "postgres:16-alpine"
	testDatabase = "bitsave_test"
	testUser     = "test_user"
	testPassword = "test_pass"
)

// NewTestDB starts a throwaway Postgres container and connects to it. The
// container is removed when the test finishes. Without a reachable Docker
// daemon the test is skipped.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()
	requireDocker(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx, testImage,
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	db, err := ConnectDB(ctx, &config.DatabaseConfig{
		Host:         host,
		Port:         port.Int(),
		User:         testUser,
		Password:     testPassword,
		Database:     testDatabase,
		SSLMode:      "disable",
		MaxOpenConns: 4,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func requireDocker(t *testing.T) {
	t.Helper()
	for _, sock := range []string{
		"/var/run/docker.sock",
		filepath.Join(os.Getenv("HOME"), ".docker/run/docker.sock"),
	} {
		if _, err := os.Stat(sock); err != nil {
			continue
		}
		conn, err := (&net.Dialer{Timeout: time.Second}).DialContext(context.Background(), "unix", sock)
		if err == nil {
			_ = conn.Close()
			return
		}
	}
	t.Skip("docker daemon socket is not accessible; skipping postgres-backed test")
}

const (
	tableExistsQuery = "EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?)"
	indexExistsQuery = "EXISTS (SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = ?)"
)

func exists(t *testing.T, db *bun.DB, query, name string) bool {
	t.Helper()
	var found bool
	if err := db.NewSelect().ColumnExpr(query, name).Scan(context.Background(), &found); err != nil {
		t.Fatalf("failed to look up %s: %v", name, err)
	}
	return found
}

// AssertTableExists fails the test when table is missing from the public schema.
func AssertTableExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if !exists(t, db, tableExistsQuery, table) {
		t.Errorf("table %s does not exist", table)
	}
}

// AssertTableNotExists fails the test when table is present.
func AssertTableNotExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if exists(t, db, tableExistsQuery, table) {
		t.Errorf("table %s should not exist but it does", table)
	}
}

// AssertIndexExists fails the test when index is missing.
func AssertIndexExists(t *testing.T, db *bun.DB, index string) {
	t.Helper()
	if !exists(t, db, indexExistsQuery, index) {
		t.Errorf("index %s does not exist", index)
	}
}
