package db

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/moments/internal/kv"
)

func TestKVRepositoryRoundTrip(t *testing.T) {
	repo := NewKVRepository(openTestSQLite(t, filepath.Join(t.TempDir(), "kv.db")), 0)

	_, found, err := repo.Get("plannedMoments")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set("plannedMoments", `[{"id":"a"}]`))
	require.NoError(t, repo.Set("plannedMoments", `[]`))

	value, found, err := repo.Get("plannedMoments")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"plannedMoments"}, keys)

	require.NoError(t, repo.Remove("plannedMoments"))
	_, found, err = repo.Get("plannedMoments")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Remove("never-written"))
}

func TestKVRepositoryQuotaExceeded(t *testing.T) {
	repo := NewKVRepository(openTestSQLite(t, filepath.Join(t.TempDir(), "quota.db")), 32)

	require.NoError(t, repo.Set("a", "0123456789"))

	err := repo.Set("b", "0123456789012345678901234")
	require.Error(t, err)
	assert.True(t, errors.Is(err, kv.ErrQuotaExceeded))
	assert.True(t, kv.IsQuotaExceeded(err))

	_, found, err := repo.Get("b")
	require.NoError(t, err)
	assert.False(t, found, "rejected write must not be persisted")

	used, err := repo.UsedBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(11), used)

	// Replacing a value is measured against the usage without the old value.
	require.NoError(t, repo.Set("a", "0123456789012345678901234567890"))
}

func TestKVRepositoryRejectsEmptyKey(t *testing.T) {
	repo := NewKVRepository(openTestSQLite(t, filepath.Join(t.TempDir(), "empty.db")), 0)
	assert.ErrorIs(t, repo.Set("  ", "x"), kv.ErrEmptyKey)
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (publisher *recordingPublisher) Publish(key string) {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	publisher.keys = append(publisher.keys, key)
}

func TestKVWatcherPublishesOnlyForeignWrites(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "shared.db")
	local := NewKVRepository(openTestSQLite(t, databasePath), 0)
	other := NewKVRepository(openTestSQLite(t, databasePath), 0)

	require.NoError(t, local.Set("plannedMoments", "[]"))

	publisher := &recordingPublisher{}
	watcher := NewKVWatcher(local, publisher, 0, zerolog.Nop())
	assert.Empty(t, watcher.Poll(), "first poll only records a baseline")

	require.NoError(t, local.Set("plannedMoments", `[{"id":"mine"}]`))
	assert.Empty(t, watcher.Poll(), "own writes are announced by the store, not the watcher")

	require.NoError(t, other.Set("moments_photos", "[]"))
	require.NoError(t, other.Set("plannedMoments", `[{"id":"theirs"}]`))
	assert.Equal(t, []string{"moments_photos", "plannedMoments"}, watcher.Poll())

	require.NoError(t, other.Remove("moments_photos"))
	assert.Equal(t, []string{"moments_photos"}, watcher.Poll())

	assert.Empty(t, watcher.Poll())
	assert.Equal(t, []string{"moments_photos", "plannedMoments", "moments_photos"}, publisher.keys)
}

func TestIsBusyError(t *testing.T) {
	assert.True(t, isBusyError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.False(t, isBusyError(errors.New("no such table: kv_entries")))
}
