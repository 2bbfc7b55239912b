package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/metrics"
	"github.com/terraincognita07/moments/internal/models"
)

const (
	PhotoMomentsKey  = "moments_photos"
	MaxPhotoMoments  = 10
	photoStoreMetric = "photo_moments"
)

// PhotoMomentStore owns the moments_photos key and caps the vault at
// MaxPhotoMoments records.
type PhotoMomentStore struct {
	store    kv.Store
	bus      *events.Bus
	notifier Notifier
	logger   zerolog.Logger

	mu sync.Mutex
}

func NewPhotoMomentStore(store kv.Store, bus *events.Bus, notifier Notifier, logger zerolog.Logger) *PhotoMomentStore {
	if bus == nil {
		bus = events.NewBus()
	}
	return &PhotoMomentStore{
		store:    store,
		bus:      bus,
		notifier: notifier,
		logger:   logger.With().Str("store", photoStoreMetric).Logger(),
	}
}

func (service *PhotoMomentStore) Subscribe(onChange func()) func() {
	return service.bus.Subscribe(onChange)
}

func (service *PhotoMomentStore) LoadAll() []models.PhotoMoment {
	return loadList[models.PhotoMoment](service.store, PhotoMomentsKey, service.logger)
}

func (service *PhotoMomentStore) Save(photo models.PhotoMoment) (err error) {
	defer func() {
		metrics.ObserveStoreOperation(photoStoreMetric, "save", FailureKind(err))
	}()

	if photo.ID == 0 {
		return fmt.Errorf("%w: photo moment id is required", ErrInvalidInput)
	}
	if photo.Feeling != "" {
		return fmt.Errorf("%w: feeling is attached through Update", ErrInvalidInput)
	}

	service.mu.Lock()
	photos := service.LoadAll()
	if len(photos) >= MaxPhotoMoments {
		service.mu.Unlock()
		return fmt.Errorf("%w: vault holds at most %d moments", ErrStorageFull, MaxPhotoMoments)
	}
	for _, existing := range photos {
		if existing.ID == photo.ID {
			service.mu.Unlock()
			return fmt.Errorf("%w: %d", ErrDuplicateID, photo.ID)
		}
	}
	wasEmpty := len(photos) == 0

	if err := persistJSON(service.store, PhotoMomentsKey, append(photos, photo)); err != nil {
		service.mu.Unlock()
		service.logger.Error().Err(err).Int64("id", photo.ID).Msg("save photo moment failed")
		return err
	}
	service.mu.Unlock()

	service.bus.Announce()
	if wasEmpty {
		notifyOnce(service.notifier, models.NotificationFirstPhotoMoment, service.logger)
	}
	return nil
}

// Update shallow-merges patch into the record with id. It is the only way a
// feeling gets attached to a moment.
func (service *PhotoMomentStore) Update(id int64, patch models.PhotoMomentPatch) (updated models.PhotoMoment, err error) {
	defer func() {
		metrics.ObserveStoreOperation(photoStoreMetric, "update", FailureKind(err))
	}()

	if patch.Feeling != nil && *patch.Feeling != "" {
		parsed, ok := models.ParseFeeling(string(*patch.Feeling))
		if !ok {
			return models.PhotoMoment{}, fmt.Errorf("%w: unknown feeling %q", ErrInvalidInput, *patch.Feeling)
		}
		patch.Feeling = &parsed
	}

	service.mu.Lock()
	photos := service.LoadAll()
	index := indexOfPhoto(photos, id)
	if index < 0 {
		service.mu.Unlock()
		return models.PhotoMoment{}, fmt.Errorf("%w: photo moment %d", ErrNotFound, id)
	}

	updated = patch.ApplyTo(photos[index])
	updated.ID = id
	photos[index] = updated
	if err := persistJSON(service.store, PhotoMomentsKey, photos); err != nil {
		service.mu.Unlock()
		service.logger.Error().Err(err).Int64("id", id).Msg("update photo moment failed")
		return models.PhotoMoment{}, err
	}
	service.mu.Unlock()

	service.bus.Announce()
	return updated, nil
}

func (service *PhotoMomentStore) Delete(id int64) (deleted bool, err error) {
	defer func() {
		result := FailureKind(err)
		if err == nil && !deleted {
			result = FailureNotFound
		}
		metrics.ObserveStoreOperation(photoStoreMetric, "delete", result)
	}()

	service.mu.Lock()
	photos := service.LoadAll()
	index := indexOfPhoto(photos, id)
	if index < 0 {
		service.mu.Unlock()
		return false, nil
	}

	remaining := append(photos[:index:index], photos[index+1:]...)
	if err := persistJSON(service.store, PhotoMomentsKey, remaining); err != nil {
		service.mu.Unlock()
		return false, err
	}
	service.mu.Unlock()

	service.bus.Announce()
	return true, nil
}

func (service *PhotoMomentStore) GetByID(id int64) (models.PhotoMoment, bool) {
	photos := service.LoadAll()
	index := indexOfPhoto(photos, id)
	if index < 0 {
		return models.PhotoMoment{}, false
	}
	return photos[index], true
}

// GetAllSorted returns the vault order: newest timestamp first, ties kept in
// persisted order.
func (service *PhotoMomentStore) GetAllSorted() []models.PhotoMoment {
	photos := service.LoadAll()
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].Timestamp > photos[j].Timestamp
	})
	return photos
}

func (service *PhotoMomentStore) GetMostRecent() (models.PhotoMoment, bool) {
	sorted := service.GetAllSorted()
	if len(sorted) == 0 {
		return models.PhotoMoment{}, false
	}
	return sorted[0], true
}

// GetPreviousID returns the next-older neighbour of id in vault order.
func (service *PhotoMomentStore) GetPreviousID(id int64) (int64, bool) {
	sorted := service.GetAllSorted()
	index := indexOfPhoto(sorted, id)
	if index < 0 || index+1 >= len(sorted) {
		return 0, false
	}
	return sorted[index+1].ID, true
}

// GetNextID returns the next-newer neighbour of id in vault order.
func (service *PhotoMomentStore) GetNextID(id int64) (int64, bool) {
	sorted := service.GetAllSorted()
	index := indexOfPhoto(sorted, id)
	if index <= 0 {
		return 0, false
	}
	return sorted[index-1].ID, true
}

func indexOfPhoto(photos []models.PhotoMoment, id int64) int {
	for i := range photos {
		if photos[i].ID == id {
			return i
		}
	}
	return -1
}
