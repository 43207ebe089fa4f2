package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_SetAndGet(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "fixtures:2024-01-15", []byte(`[{"id":"x"}]`), time.Minute))

	data, err := backend.Get(ctx, "fixtures:2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, string(data))
}

func TestMemoryBackend_GetMiss(t *testing.T) {
	backend := NewMemoryBackend()

	_, err := backend.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryBackend_LazyExpiryWithoutSweep(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	now := time.Now()
	backend.now = func() time.Time { return now }

	require.NoError(t, backend.Set(ctx, "live:2024-01-15", []byte(`[]`), 30*time.Second))

	// Still fresh.
	_, err := backend.Get(ctx, "live:2024-01-15")
	require.NoError(t, err)

	// Advance past expiry; the sweep never ran, Get must still miss.
	now = now.Add(31 * time.Second)
	_, err = backend.Get(ctx, "live:2024-01-15")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// The lazy check also removed the entry.
	assert.Zero(t, backend.Len())
}

func TestMemoryBackend_OverwriteResetsExpiry(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	now := time.Now()
	backend.now = func() time.Time { return now }

	require.NoError(t, backend.Set(ctx, "k", []byte("old"), 10*time.Second))
	now = now.Add(8 * time.Second)
	require.NoError(t, backend.Set(ctx, "k", []byte("new"), 10*time.Second))

	// 12s after the first write, 4s after the second: still live.
	now = now.Add(4 * time.Second)
	data, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestMemoryBackend_RejectsNonPositiveTTL(t *testing.T) {
	backend := NewMemoryBackend()

	err := backend.Set(context.Background(), "k", []byte("v"), 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	err = backend.Set(context.Background(), "k", []byte("v"), -time.Second)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestMemoryBackend_Delete(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, backend.Delete(ctx, "k"))

	_, err := backend.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting an absent key is not an error.
	assert.NoError(t, backend.Delete(ctx, "k"))
}

func TestMemoryBackend_SweepEvictsExpired(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	now := time.Now()
	backend.now = func() time.Time { return now }

	require.NoError(t, backend.Set(ctx, "old", []byte("v"), time.Second))
	require.NoError(t, backend.Set(ctx, "fresh", []byte("v"), time.Hour))

	now = now.Add(2 * time.Second)
	backend.sweep()

	assert.Equal(t, 1, backend.Len())
	_, err := backend.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryBackend_StartStop(t *testing.T) {
	backend := NewMemoryBackend()
	backend.sweepInterval = 10 * time.Millisecond

	backend.Start()
	backend.Start() // idempotent

	require.NoError(t, backend.Set(context.Background(), "k", []byte("v"), time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	// The background sweep removed the expired entry.
	assert.Zero(t, backend.Len())

	backend.Stop()
	backend.Stop() // idempotent
}

func TestMemoryBackend_StopWithoutStart(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Stop() // must not block or panic
}

func TestMemoryBackend_IsConnected(t *testing.T) {
	backend := NewMemoryBackend()
	assert.True(t, backend.IsConnected(context.Background()))
}
