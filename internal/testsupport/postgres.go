package testsupport

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcoach/internal/db"
)

const testDBName = "fitcoach_test"

// PostgresPool returns a pool connected to a database with the service schema applied.
// If POSTGRES_HOST is set, that server is used (port from POSTGRES_PORT, default 5432),
// otherwise a throwaway postgres container is started through dockertest.
func PostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	params := db.NewDBPoolParams{
		DBHost: os.Getenv("POSTGRES_HOST"),
		DBPort: os.Getenv("POSTGRES_PORT"),
		DBName: testDBName,
	}
	if params.DBPort == "" {
		params.DBPort = "5432"
	}

	var dockerPool *dockertest.Pool
	if params.DBHost == "" {
		dockerPool, params = startPostgresContainer(t, params)
	}
	t.Logf("using postgres: %s:%s", params.DBHost, params.DBPort)

	dbPool, err := db.NewDBPool(ctx, params)
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	ping := func() error { return dbPool.Ping(ctx) }
	if dockerPool != nil {
		require.NoError(t, dockerPool.Retry(ping))
	} else {
		require.NoError(t, ping())
	}

	_, err = dbPool.Exec(ctx, db.Schema)
	require.NoError(t, err)

	return dbPool
}

func startPostgresContainer(t *testing.T, params db.NewDBPoolParams) (*dockertest.Pool, db.NewDBPoolParams) {
	t.Helper()

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not create new dockertest pool")
	require.NoError(t, dockerPool.Client.Ping(), "could not ping docker")
	dockerPool.MaxWait = time.Minute

	pgResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err, "dockerpool run postgres")

	t.Cleanup(func() {
		if err := dockerPool.Purge(pgResource); err != nil {
			t.Logf("postgres teardown: %s", err)
		}
	})

	params.DBHost = "localhost"
	params.DBPort = pgResource.GetPort("5432/tcp")
	return dockerPool, params
}

// Truncate empties the given tables.
func Truncate(t *testing.T, dbPool *pgxpool.Pool, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := dbPool.Exec(context.Background(), "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}
