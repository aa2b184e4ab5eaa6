package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDrivers(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := Open(DriverFile, filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	sqliteStore, err := Open(DriverSQLite, filepath.Join(dir, "state.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		fileStore.Close()
		sqliteStore.Close()
	})
	return map[string]Store{DriverFile: fileStore, DriverSQLite: sqliteStore}
}

func TestStoreGetSetDelete(t *testing.T) {
	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("crm_recent_searches")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set("crm_recent_searches", []byte(`[{"id":"1"}]`)))
			got, err := s.Get("crm_recent_searches")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(got))

			require.NoError(t, s.Set("crm_recent_searches", []byte("not json")))
			got, err = s.Get("crm_recent_searches")
			require.NoError(t, err)
			assert.Equal(t, "not json", string(got))

			require.NoError(t, s.Delete("crm_recent_searches"))
			_, err = s.Get("crm_recent_searches")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("v")))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	s, err := OpenFile(path)
	require.NoError(t, err)
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "x")
	assert.Error(t, err)
}
