package services

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/kv"
)

type momentStores struct {
	durable       *kv.MemoryStore
	planned       *PlannedMomentStore
	photos        *PhotoMomentStore
	notifications *LocalNotificationStore
	profile       *ProfileStore
}

func newMomentStores(t *testing.T, quotaBytes int64) momentStores {
	t.Helper()

	durable := kv.NewMemoryStore(quotaBytes)
	hub := events.NewHub()
	logger := zerolog.Nop()
	notifications := NewLocalNotificationStore(durable, hub.Topic(LocalNotificationsKey), logger)
	return momentStores{
		durable:       durable,
		planned:       NewPlannedMomentStore(durable, hub.Topic(PlannedMomentsKey), notifications, logger),
		photos:        NewPhotoMomentStore(durable, hub.Topic(PhotoMomentsKey), notifications, logger),
		notifications: notifications,
		profile:       NewProfileStore(durable, hub.Topic(ProfileKey), notifications, logger),
	}
}

// hookedStore runs beforeSet once, right before the first write reaches the
// wrapped store.
type hookedStore struct {
	kv.Store
	once      sync.Once
	beforeSet func()
}

func (store *hookedStore) Set(key string, value string) error {
	store.once.Do(store.beforeSet)
	return store.Store.Set(key, value)
}

type failingStore struct {
	kv.Store
	err error
}

func (store failingStore) Set(string, string) error {
	return store.err
}

type announceCounter struct {
	mu    sync.Mutex
	count int
}

func (counter *announceCounter) observe() {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	counter.count++
}

func (counter *announceCounter) value() int {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return counter.count
}

// keyFailingStore fails the next failures writes to key and then recovers.
type keyFailingStore struct {
	kv.Store
	key      string
	failures int
	err      error
}

func (store *keyFailingStore) Set(key string, value string) error {
	if key == store.key && store.failures > 0 {
		store.failures--
		return store.err
	}
	return store.Store.Set(key, value)
}
