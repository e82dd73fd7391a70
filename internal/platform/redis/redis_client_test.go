package redis

import (
	"context"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "pw")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, Config{Host: "cache.internal", Port: "6379", Password: "pw"}, cfg)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "cache.internal:6379", cfg.Addr())
}

func TestNewRedisClient_Disabled(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), Config{})

	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_Miniredis(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	host, port, _ := net.SplitHostPort(mr.Addr())
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})

	assert.Error(t, err)
	assert.Nil(t, rdb)
}
