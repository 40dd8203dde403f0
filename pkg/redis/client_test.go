package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestHealthyWithoutClient(t *testing.T) {
	orig := client
	t.Cleanup(func() { client = orig })
	client = nil
	assert.False(t, Healthy(context.Background()))
}

func TestBasicOps(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	orig := client
	t.Cleanup(func() { client = orig })
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	require.NotNil(t, GetClient())

	ctx := context.Background()
	assert.True(t, Healthy(ctx))

	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	val, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	acquired, err := SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "SetNX must not overwrite an existing key")

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.ErrorIs(t, err, goredis.Nil)

	acquired, err = SetNX(ctx, "k", "v2", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}
