package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/security"
)

// Notifier fires a one-time achievement notification. A nil result with a
// nil error means the type had already fired.
type Notifier interface {
	Add(notificationType models.NotificationType) (*models.LocalNotification, error)
}

// millisClock hands out unix-millisecond timestamps that strictly increase
// within the process, even when the wall clock does not move.
type millisClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func newMillisClock(now func() time.Time) *millisClock {
	if now == nil {
		now = time.Now
	}
	return &millisClock{now: now}
}

func (clock *millisClock) Next() int64 {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	value := clock.now().UnixMilli()
	if value <= clock.last {
		value = clock.last + 1
	}
	clock.last = value
	return value
}

func newRecordID(prefix string, millis int64) (string, error) {
	suffix, err := security.NewIDSuffix()
	if err != nil {
		return "", fmt.Errorf("%w: generate id: %v", ErrUnknown, err)
	}
	return prefix + "_" + strconv.FormatInt(millis, 10) + "_" + suffix, nil
}

// loadList reads a JSON array from key. Missing, unreadable or malformed
// data reads as an empty collection.
func loadList[T any](store kv.Store, key string, logger zerolog.Logger) []T {
	raw, found, err := store.Get(key)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("read collection failed")
		return []T{}
	}
	if !found {
		return []T{}
	}

	items := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("malformed collection treated as empty")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func persistJSON(store kv.Store, key string, value any) error {
	if err := kv.SetJSON(store, key, value); err != nil {
		return persistFailure(err)
	}
	return nil
}

// persistFailure maps adapter errors onto the domain taxonomy: a full
// namespace is storage-full, anything else is unknown.
func persistFailure(err error) error {
	if kv.IsQuotaExceeded(err) {
		return fmt.Errorf("%w: %v", ErrStorageFull, err)
	}
	return fmt.Errorf("%w: %v", ErrUnknown, err)
}

func notifyOnce(notifier Notifier, notificationType models.NotificationType, logger zerolog.Logger) {
	if notifier == nil {
		return
	}
	if _, err := notifier.Add(notificationType); err != nil {
		logger.Warn().Err(err).Str("type", string(notificationType)).Msg("notification not recorded")
	}
}
