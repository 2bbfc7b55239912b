package db

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/metrics"
)

// ChangePublisher receives the keys another process wrote.
type ChangePublisher interface {
	Publish(key string)
}

// KVWatcher surfaces writes made to the durable namespace by other processes,
// the way a browser delivers storage events from other tabs.
type KVWatcher struct {
	repo      *KVRepository
	publisher ChangePublisher
	interval  time.Duration
	logger    zerolog.Logger
}

func NewKVWatcher(repo *KVRepository, publisher ChangePublisher, interval time.Duration, logger zerolog.Logger) *KVWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &KVWatcher{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		logger:    logger.With().Str("component", "kv_watcher").Logger(),
	}
}

func (watcher *KVWatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(watcher.interval)
	go func() {
		defer ticker.Stop()

		watcher.Poll()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				watcher.Poll()
			}
		}
	}()
}

// Poll publishes every key changed elsewhere since the previous poll and
// returns them.
func (watcher *KVWatcher) Poll() []string {
	changed, err := watcher.repo.ExternalChanges()
	if err != nil {
		watcher.logger.Warn().Err(err).Msg("poll durable namespace failed")
		return nil
	}
	for _, key := range changed {
		metrics.ExternalChanges.WithLabelValues(key).Inc()
		watcher.logger.Debug().Str("key", key).Msg("external change")
		watcher.publisher.Publish(key)
	}
	return changed
}
