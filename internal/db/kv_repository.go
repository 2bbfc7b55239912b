package db

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/metrics"
	"github.com/terraincognita07/moments/internal/models"
	"gorm.io/gorm"
)

const maxBusyRetries = 5

// KVRepository is the durable namespace. Every process opening the same
// database file shares it; revisions let each process tell its own writes
// from writes made elsewhere.
type KVRepository struct {
	database   *gorm.DB
	quotaBytes int64
	now        func() time.Time
	newBackOff func() backoff.BackOff

	// mu serializes this process's writes with ExternalChanges so a write
	// in flight is never mistaken for a foreign one.
	mu     sync.Mutex
	known  map[string]int64
	primed bool
}

func NewKVRepository(database *gorm.DB, quotaBytes int64) *KVRepository {
	return &KVRepository{
		database:   database,
		quotaBytes: quotaBytes,
		now:        time.Now,
		newBackOff: func() backoff.BackOff {
			policy := backoff.NewExponentialBackOff()
			policy.InitialInterval = 20 * time.Millisecond
			policy.MaxElapsedTime = 2 * time.Second
			return backoff.WithMaxRetries(policy, maxBusyRetries)
		},
		known: make(map[string]int64),
	}
}

var _ kv.Store = (*KVRepository)(nil)

func (repo *KVRepository) Get(key string) (string, bool, error) {
	entry := models.KVEntry{}
	err := repo.database.Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (repo *KVRepository) Set(key string, value string) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	var revision int64
	write := func() error {
		return repo.database.Transaction(func(tx *gorm.DB) error {
			used, err := usedBytesExcluding(tx, key)
			if err != nil {
				return err
			}
			if repo.quotaBytes > 0 && used+kv.EntrySize(key, value) > repo.quotaBytes {
				return fmt.Errorf("set %s: %w", key, kv.ErrQuotaExceeded)
			}

			if err := tx.Exec(`
INSERT INTO kv_entries(entry_key, entry_value, revision, updated_at) VALUES (?, ?, 1, ?)
ON CONFLICT(entry_key) DO UPDATE SET
  entry_value = excluded.entry_value,
  revision = kv_entries.revision + 1,
  updated_at = excluded.updated_at`,
				key, value, repo.now().UTC(),
			).Error; err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}

			return tx.Raw(`SELECT revision FROM kv_entries WHERE entry_key = ?`, key).Scan(&revision).Error
		})
	}

	if err := repo.retryBusy(write); err != nil {
		return err
	}

	repo.known[key] = revision
	repo.refreshUsageGauge()
	return nil
}

func (repo *KVRepository) Remove(key string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	remove := func() error {
		if err := repo.database.Where("entry_key = ?", key).Delete(&models.KVEntry{}).Error; err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
		return nil
	}
	if err := repo.retryBusy(remove); err != nil {
		return err
	}

	delete(repo.known, key)
	repo.refreshUsageGauge()
	return nil
}

func (repo *KVRepository) UsedBytes() (int64, error) {
	return usedBytesExcluding(repo.database, "")
}

func (repo *KVRepository) Keys() ([]string, error) {
	keys := make([]string, 0)
	if err := repo.database.Model(&models.KVEntry{}).Order("entry_key ASC").Pluck("entry_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// ExternalChanges returns the keys whose revision moved since the previous
// call without this repository having written them, including keys removed
// elsewhere. The first call only records a baseline.
func (repo *KVRepository) ExternalChanges() ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	current, err := repo.loadRevisions()
	if err != nil {
		return nil, err
	}

	if !repo.primed {
		repo.known = current
		repo.primed = true
		return nil, nil
	}

	changed := make([]string, 0)
	for key, revision := range current {
		if repo.known[key] != revision {
			changed = append(changed, key)
		}
	}
	for key := range repo.known {
		if _, ok := current[key]; !ok {
			changed = append(changed, key)
		}
	}
	repo.known = current
	sort.Strings(changed)
	return changed, nil
}

type revisionRow struct {
	Key      string `gorm:"column:entry_key"`
	Revision int64  `gorm:"column:revision"`
}

func (repo *KVRepository) loadRevisions() (map[string]int64, error) {
	rows := make([]revisionRow, 0)
	if err := repo.database.Raw(`SELECT entry_key, revision FROM kv_entries`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load revisions: %w", err)
	}
	revisions := make(map[string]int64, len(rows))
	for _, row := range rows {
		revisions[row.Key] = row.Revision
	}
	return revisions, nil
}

func (repo *KVRepository) retryBusy(operation func() error) error {
	return backoff.Retry(func() error {
		err := operation()
		if err == nil || isBusyError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, repo.newBackOff())
}

func (repo *KVRepository) refreshUsageGauge() {
	used, err := usedBytesExcluding(repo.database, "")
	if err != nil {
		return
	}
	metrics.DurableBytesUsed.Set(float64(used))
}

func usedBytesExcluding(database *gorm.DB, key string) (int64, error) {
	var used int64
	err := database.Raw(`
SELECT COALESCE(SUM(LENGTH(CAST(entry_key AS BLOB)) + LENGTH(CAST(entry_value AS BLOB))), 0)
FROM kv_entries WHERE entry_key <> ?`, key).Scan(&used).Error
	if err != nil {
		return 0, fmt.Errorf("measure usage: %w", err)
	}
	return used, nil
}

func isBusyError(err error) bool {
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "sqlite_busy") || strings.Contains(message, "database is locked")
}
