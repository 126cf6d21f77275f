package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
)

// GetRedisClientAndCtx returns a flushed redis client and a context that
// expires in a minute. REDIS_HOST (and optionally REDIS_PORT, REDIS_PASS)
// points it at a running server, otherwise a redis container is started.
func GetRedisClientAndCtx(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	var dockerPool *dockertest.Pool
	if redisHost == "" {
		dockerPool, redisPort = startRedisContainer(t)
		redisHost = "localhost"
	}
	t.Logf("using redis: [%s:%s]", redisHost, redisPort)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, redisPort),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0, // use default DB
	})
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Logf("close redis client: %s", err)
		}
	})

	ping := func() error { return rdb.Ping(ctx).Err() }
	if dockerPool != nil {
		require.NoError(t, dockerPool.Retry(ping))
	} else {
		require.NoError(t, ping())
	}
	require.NoError(t, rdb.FlushDB(ctx).Err())

	return ctx, rdb
}

func startRedisContainer(t *testing.T) (*dockertest.Pool, string) {
	t.Helper()

	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not create new dockertest pool")
	require.NoError(t, dockerPool.Client.Ping(), "could not ping docker")
	dockerPool.MaxWait = time.Minute

	redisResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	require.NoError(t, err, "dockerpool run redis")

	t.Cleanup(func() {
		if err := dockerPool.Purge(redisResource); err != nil {
			t.Logf("redis teardown: %s", err)
		}
	})

	return dockerPool, redisResource.GetPort("6379/tcp")
}
