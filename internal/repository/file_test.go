package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	_, ok, err := repo.Get(ctx, SlotProducts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put(ctx, SlotProducts, []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, SlotProducts, []byte(`[2]`)))

	v, ok, err := repo.Get(ctx, SlotProducts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[2]`, string(v))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, repo.Delete(ctx, SlotProducts))
	require.NoError(t, repo.Delete(ctx, SlotProducts))

	require.NoError(t, repo.Put(ctx, SlotSales, []byte(`[]`)))
	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Get(ctx, SlotSales)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileRepository_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	store := NewStore(repo, nil)
	want := sampleState()
	require.NoError(t, store.Save(ctx, want))

	reopened, err := NewFileRepository(repo.dir)
	require.NoError(t, err)
	assert.Equal(t, want, NewStore(reopened, nil).Load(ctx))
}
