package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	t.Run("Writes file at the relative path", func(t *testing.T) {
		root := t.TempDir()
		store := NewLocalStore(root)

		err := store.Save(context.Background(), "exports/report.csv", []byte("a,b\n1,2\n"))

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(root, "exports", "report.csv"))
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(data))
	})

	t.Run("Same path overwrites the previous file", func(t *testing.T) {
		root := t.TempDir()
		store := NewLocalStore(root)

		require.NoError(t, store.Save(context.Background(), "exports/report.csv", []byte("old")))
		require.NoError(t, store.Save(context.Background(), "exports/report.csv", []byte("new")))

		data, err := os.ReadFile(filepath.Join(root, "exports", "report.csv"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("No temp files are left behind", func(t *testing.T) {
		root := t.TempDir()
		store := NewLocalStore(root)

		require.NoError(t, store.Save(context.Background(), "exports/report.csv", []byte("data")))

		entries, err := os.ReadDir(filepath.Join(root, "exports"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "report.csv", entries[0].Name())
	})

	t.Run("Unwritable root surfaces an error", func(t *testing.T) {
		store := NewLocalStore(filepath.Join(string(os.PathSeparator), "proc", "no-such-root"))

		err := store.Save(context.Background(), "exports/report.csv", []byte("data"))

		assert.Error(t, err)
	})
}
