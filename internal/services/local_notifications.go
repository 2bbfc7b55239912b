package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/metrics"
	"github.com/terraincognita07/moments/internal/models"
)

const (
	LocalNotificationsKey   = "local_notifications"
	NotificationTriggersKey = "notification_triggers"
)

// LocalNotificationStore records fire-once achievement notifications. The
// trigger map under notification_triggers remembers which types already fired
// even if the notification list is lost.
type LocalNotificationStore struct {
	store  kv.Store
	bus    *events.Bus
	logger zerolog.Logger
	clock  *millisClock

	mu sync.Mutex
}

func NewLocalNotificationStore(store kv.Store, bus *events.Bus, logger zerolog.Logger) *LocalNotificationStore {
	if bus == nil {
		bus = events.NewBus()
	}
	return &LocalNotificationStore{
		store:  store,
		bus:    bus,
		logger: logger.With().Str("store", "local_notifications").Logger(),
		clock:  newMillisClock(time.Now),
	}
}

func (service *LocalNotificationStore) Subscribe(onChange func()) func() {
	return service.bus.Subscribe(onChange)
}

func (service *LocalNotificationStore) LoadAll() []models.LocalNotification {
	return loadList[models.LocalNotification](service.store, LocalNotificationsKey, service.logger)
}

// Add creates the notification for notificationType unless that type has
// fired before, in which case it returns nil and no error.
func (service *LocalNotificationStore) Add(notificationType models.NotificationType) (notification *models.LocalNotification, err error) {
	defer func() {
		metrics.ObserveStoreOperation("local_notifications", "add", FailureKind(err))
	}()

	message, ok := models.NotificationMessage(notificationType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, notificationType)
	}

	service.mu.Lock()
	triggers := service.loadTriggers()
	if triggers[notificationType] {
		service.mu.Unlock()
		return nil, nil
	}

	createdAt := service.clock.Next()
	id, err := newRecordID("notif", createdAt)
	if err != nil {
		service.mu.Unlock()
		return nil, err
	}
	created := models.LocalNotification{
		ID:        id,
		Type:      notificationType,
		Message:   message,
		CreatedAt: createdAt,
		Read:      false,
	}

	previous := service.LoadAll()
	notifications := append(previous[:len(previous):len(previous)], created)
	if err := persistJSON(service.store, LocalNotificationsKey, notifications); err != nil {
		service.mu.Unlock()
		service.logger.Error().Err(err).Str("type", string(notificationType)).Msg("persist notification failed")
		return nil, err
	}

	// A notification is never kept without its trigger.
	triggers[notificationType] = true
	if err := persistJSON(service.store, NotificationTriggersKey, triggers); err != nil {
		if rollbackErr := persistJSON(service.store, LocalNotificationsKey, previous); rollbackErr != nil {
			service.logger.Error().Err(rollbackErr).Str("type", string(notificationType)).Msg("roll back notification failed")
		}
		service.mu.Unlock()
		service.logger.Error().Err(err).Str("type", string(notificationType)).Msg("persist trigger state failed")
		return nil, err
	}
	service.mu.Unlock()

	service.bus.Announce()
	return &created, nil
}

// MarkRead flips the notification with id to read. Subscribers are notified
// even when nothing changed.
func (service *LocalNotificationStore) MarkRead(id string) (err error) {
	defer func() {
		metrics.ObserveStoreOperation("local_notifications", "mark_read", FailureKind(err))
	}()

	service.mu.Lock()
	notifications := service.LoadAll()
	changed := false
	for i := range notifications {
		if notifications[i].ID == id && !notifications[i].Read {
			notifications[i].Read = true
			changed = true
			break
		}
	}
	if changed {
		if err := persistJSON(service.store, LocalNotificationsKey, notifications); err != nil {
			service.mu.Unlock()
			return err
		}
	}
	service.mu.Unlock()

	service.bus.Announce()
	return nil
}

func (service *LocalNotificationStore) MarkAllRead() (err error) {
	defer func() {
		metrics.ObserveStoreOperation("local_notifications", "mark_all_read", FailureKind(err))
	}()

	service.mu.Lock()
	notifications := service.LoadAll()
	for i := range notifications {
		notifications[i].Read = true
	}
	if err := persistJSON(service.store, LocalNotificationsKey, notifications); err != nil {
		service.mu.Unlock()
		return err
	}
	service.mu.Unlock()

	service.bus.Announce()
	return nil
}

func (service *LocalNotificationStore) UnreadCount() int {
	count := 0
	for _, notification := range service.LoadAll() {
		if !notification.Read {
			count++
		}
	}
	return count
}

// SortedByRecency returns notifications newest first.
func (service *LocalNotificationStore) SortedByRecency() []models.LocalNotification {
	notifications := service.LoadAll()
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})
	return notifications
}

func (service *LocalNotificationStore) HasTriggered(notificationType models.NotificationType) bool {
	return service.loadTriggers()[notificationType]
}

func (service *LocalNotificationStore) loadTriggers() map[models.NotificationType]bool {
	triggers := make(map[models.NotificationType]bool)
	found, err := kv.GetJSON(service.store, NotificationTriggersKey, &triggers)
	if err != nil {
		service.logger.Warn().Err(err).Msg("malformed trigger state treated as empty")
		return make(map[models.NotificationType]bool)
	}
	if !found || triggers == nil {
		return make(map[models.NotificationType]bool)
	}
	return triggers
}
