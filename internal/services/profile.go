package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/metrics"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/security"
)

const (
	ProfileKey = "user_profile"

	maxDisplayNameLen = 80
)

type ProfileStore struct {
	store    kv.Store
	bus      *events.Bus
	notifier Notifier
	logger   zerolog.Logger

	mu sync.Mutex
}

func NewProfileStore(store kv.Store, bus *events.Bus, notifier Notifier, logger zerolog.Logger) *ProfileStore {
	if bus == nil {
		bus = events.NewBus()
	}
	return &ProfileStore{
		store:    store,
		bus:      bus,
		notifier: notifier,
		logger:   logger.With().Str("store", "profile").Logger(),
	}
}

func (service *ProfileStore) Subscribe(onChange func()) func() {
	return service.bus.Subscribe(onChange)
}

// Load returns the stored profile. A missing profile or invite code is
// created and persisted on the spot; unreadable data yields a fresh profile
// that is not written back.
func (service *ProfileStore) Load() (models.UserProfile, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	profile := models.UserProfile{}
	found, err := kv.GetJSON(service.store, ProfileKey, &profile)
	if err != nil {
		service.logger.Warn().Err(err).Msg("unreadable profile replaced in memory")
		code, codeErr := newInviteCode()
		if codeErr != nil {
			return models.UserProfile{}, codeErr
		}
		return models.UserProfile{InviteCode: code}, nil
	}
	if found && profile.InviteCode != "" {
		return profile, nil
	}

	profile.InviteCode, err = newInviteCode()
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := persistJSON(service.store, ProfileKey, profile); err != nil {
		service.logger.Error().Err(err).Msg("persist invite code failed")
		return profile, err
	}
	return profile, nil
}

// Save replaces the stored profile. An empty invite code keeps the current
// one.
func (service *ProfileStore) Save(profile models.UserProfile) (saved models.UserProfile, err error) {
	defer func() {
		metrics.ObserveStoreOperation("profile", "save", FailureKind(err))
	}()

	profile.DisplayName = strings.TrimSpace(profile.DisplayName)
	profile.Location = strings.TrimSpace(profile.Location)
	if len([]rune(profile.DisplayName)) > maxDisplayNameLen {
		return models.UserProfile{}, fmt.Errorf("%w: display name longer than %d characters", ErrInvalidInput, maxDisplayNameLen)
	}
	if coordinates := profile.Coordinates; coordinates != nil {
		if coordinates.Latitude < -90 || coordinates.Latitude > 90 || coordinates.Longitude < -180 || coordinates.Longitude > 180 {
			return models.UserProfile{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
		}
	}

	if strings.TrimSpace(profile.InviteCode) == "" {
		current, loadErr := service.Load()
		if loadErr != nil {
			return models.UserProfile{}, loadErr
		}
		profile.InviteCode = current.InviteCode
	}

	service.mu.Lock()
	if err := persistJSON(service.store, ProfileKey, profile); err != nil {
		service.mu.Unlock()
		service.logger.Error().Err(err).Msg("save profile failed")
		return models.UserProfile{}, err
	}
	service.mu.Unlock()

	service.bus.Announce()
	notifyOnce(service.notifier, models.NotificationFirstProfileSave, service.logger)
	return profile, nil
}

func newInviteCode() (string, error) {
	code, err := security.NewInviteCode()
	if err != nil {
		return "", fmt.Errorf("%w: generate invite code: %v", ErrUnknown, err)
	}
	return code, nil
}
