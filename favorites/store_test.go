package favorites

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-browser/interfaces"
)

var (
	_ interfaces.FavoritesStore = (*MemoryStore)(nil)
	_ interfaces.FavoritesStore = (*SQLiteStore)(nil)
)

func TestMemoryStore_ToggleIsInvolution(t *testing.T) {
	store := NewMemoryStore(nil)

	assert.False(t, store.Contains("1"))

	now, err := store.Toggle("1")
	require.NoError(t, err)
	assert.True(t, now)
	assert.True(t, store.Contains("1"))

	now, err = store.Toggle("1")
	require.NoError(t, err)
	assert.False(t, now)
	assert.False(t, store.Contains("1"))
	assert.Empty(t, store.IDs())
}

func TestMemoryStore_EmptyID(t *testing.T) {
	store := NewMemoryStore(nil)

	_, err := store.Toggle("")
	assert.True(t, errors.Is(err, ErrEmptyID))
	assert.Empty(t, store.IDs())
}

func TestMemoryStore_IDsSorted(t *testing.T) {
	store := NewMemoryStore(nil)
	for _, id := range []string{"c", "a", "b"} {
		_, err := store.Toggle(id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a", "b", "c"}, store.IDs())
}

func TestMemoryStore_SubscribeReceivesSnapshot(t *testing.T) {
	store := NewMemoryStore(nil)
	sub := store.Subscribe()
	defer sub.Cancel()

	_, err := store.Toggle("1")
	require.NoError(t, err)

	select {
	case ids := <-sub.Chan():
		assert.Equal(t, []string{"1"}, ids)
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.db")

	store, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)

	_, err = store.Toggle("Qwsogvtv82FCd")
	require.NoError(t, err)
	_, err = store.Toggle("razxDUgYGNAdQ")
	require.NoError(t, err)
	_, err = store.Toggle("razxDUgYGNAdQ")
	require.NoError(t, err)
	store.Stop()

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Stop()

	assert.Equal(t, []string{"Qwsogvtv82FCd"}, reopened.IDs())
	assert.True(t, reopened.Contains("Qwsogvtv82FCd"))
	assert.False(t, reopened.Contains("razxDUgYGNAdQ"))
}

func TestSQLiteStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "favorites.db"), nil)
	require.NoError(t, err)

	store.Stop() // closed database makes every write fail

	_, err = store.Toggle("1")
	assert.Error(t, err)
	assert.False(t, store.Contains("1"))
}
