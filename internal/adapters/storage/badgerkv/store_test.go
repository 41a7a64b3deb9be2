package badgerkv

import (
	"context"
	"testing"

	"home-aidkit/internal/ports/kv"

	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	err = store.Set(ctx, "dose_tracker/v1/u1", []byte(`{"date":"2026-03-10"}`))
	require.NoError(t, err)

	got, err := store.Get(ctx, "dose_tracker/v1/u1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"date":"2026-03-10"}`), got)
}

func TestStore_GetMissingKey(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_OverwriteKeepsLatest(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)
}
