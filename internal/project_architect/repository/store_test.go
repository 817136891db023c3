package repository

import (
	"context"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func sampleState() domain.WorkspaceState {
	st := domain.NewWorkspaceState(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	st.ActiveTab = domain.TabDetails
	st.Simulator = domain.SimulatorState{
		Phase:  domain.PhaseResultReady,
		Image:  "data:image/png;base64,iVBORw0KGgo=",
		Result: &domain.HazardResult{HazardDetected: true, Type: "fire", Confidence: 92},
	}
	return st
}

func TestRedisStore_SaveLoadDelete(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	st := sampleState()
	require.NoError(t, store.Save(ctx, "s1", st))
	assert.True(t, mr.Exists("architect:session:s1"))
	assert.Equal(t, time.Minute, mr.TTL("architect:session:s1"))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, st, got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestRedisStore_ExpiryAndSweep(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old", sampleState()))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, store.Save(ctx, "new", sampleState()))

	_, err := store.Load(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisStore_CorruptData(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, 0)
	require.NoError(t, mr.Set("architect:session:bad", "{not json"))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, 0)
	assert.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "redis", store.Name())

	mr.SetError("LOADING")
	assert.Error(t, store.Ping(context.Background()))
	mr.SetError("")
}

func TestMemoryStore_SaveLoadExpire(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	st := sampleState()
	require.NoError(t, store.Save(ctx, "s1", st))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, st, got)

	// Stored copies are independent of the caller's value.
	got.Project.WorkingLogic[0] = "changed"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, st.Project.WorkingLogic[0], again.Project.WorkingLogic[0])

	now = now.Add(time.Minute)
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_Sweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old", sampleState()))
	now = now.Add(90 * time.Second)
	require.NoError(t, store.Save(ctx, "new", sampleState()))

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, "new"))
	n, _ = store.Count(ctx)
	assert.Equal(t, 0, n)
}
