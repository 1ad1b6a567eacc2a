package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir(), testLogger())
	ctx := context.Background()

	payload := []byte(`{"room":"tavern","day":2}`)
	require.NoError(t, store.Save(ctx, "slot1", payload))

	got, err := store.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStore_LoadMissingSlot(t *testing.T) {
	store := NewFileStore(t.TempDir(), testLogger())

	_, err := store.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStore_OverwriteSlot(t *testing.T) {
	store := NewFileStore(t.TempDir(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "slot1", []byte(`{"day":1}`)))
	require.NoError(t, store.Save(ctx, "slot1", []byte(`{"day":2}`)))

	got, err := store.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":2}`, string(got))
}

func TestFileStore_List(t *testing.T) {
	store := NewFileStore(t.TempDir(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "zeta", []byte(`{}`)))
	require.NoError(t, store.Save(ctx, "alpha", []byte(`{}`)))

	slots, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "alpha", slots[0].Slot)
	assert.Equal(t, "zeta", slots[1].Slot)
	assert.NotEqual(t, uuid.Nil, slots[0].ID)
	assert.False(t, slots[0].SavedAt.IsZero())
}

func TestFileStore_ListEmptyDir(t *testing.T) {
	store := NewFileStore(t.TempDir()+"/does-not-exist", testLogger())

	slots, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis store: %v", err)
	}

	return store, mr
}

func TestRedisStore_SaveLoadRoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	payload := []byte(`{"room":"chapel","gold":42}`)
	require.NoError(t, store.Save(ctx, "slot1", payload))

	got, err := store.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRedisStore_LoadMissingSlot(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	_, err := store.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRedisStore_List(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "beta", []byte(`{}`)))
	require.NoError(t, store.Save(ctx, "alpha", []byte(`{}`)))

	slots, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "alpha", slots[0].Slot)
	assert.Equal(t, "beta", slots[1].Slot)
}

func TestRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not-a-url", testLogger())
	assert.Error(t, err)
}

func TestEnvelope_WrapUnwrap(t *testing.T) {
	payload := []byte(`{"day":3}`)

	raw, err := wrap(payload)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.NotEqual(t, uuid.Nil, env.ID)
	assert.False(t, env.SavedAt.IsZero())
	assert.JSONEq(t, string(payload), string(env.Data))

	assert.Equal(t, payload, unwrap(raw))
}

func TestUnwrap_LegacyRawSave(t *testing.T) {
	// Saves written before the envelope format load as-is.
	legacy := []byte(`{"version":"0.9","state":{"day":1}}`)
	assert.Equal(t, legacy, unwrap(legacy))
}
