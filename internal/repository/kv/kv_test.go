package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"schoollink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	stores := map[string]domain.KVStore{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
	ctx := context.Background()

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, domain.KeyEvents)
			require.ErrorIs(t, err, domain.ErrKeyNotFound)

			require.NoError(t, s.Set(ctx, domain.KeyEvents, []byte(`[]`)))
			got, err := s.Get(ctx, domain.KeyEvents)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, s.Set(ctx, domain.KeyEvents, []byte(`[{"id":"a"}]`)))
			got, err = s.Get(ctx, domain.KeyEvents)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, string(got))

			require.NoError(t, s.Delete(ctx, domain.KeyEvents))
			require.NoError(t, s.Delete(ctx, domain.KeyEvents), "deleting an absent key is fine")
			_, err = s.Get(ctx, domain.KeyEvents)
			require.ErrorIs(t, err, domain.ErrKeyNotFound)
		})
	}
}

func TestMemoryStore_copiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore_layoutAndPermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), domain.KeySettings, []byte(`{}`)))

	info, err := os.Stat(filepath.Join(dir, "school_link_settings.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_rejectsUnsafeKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", "a/b", "", "UPPER"} {
		assert.Error(t, s.Set(context.Background(), key, []byte("x")), key)
	}

	_, err = NewFileStore("")
	assert.Error(t, err)
}
