package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/metrics"
	"github.com/terraincognita07/moments/internal/models"
)

const (
	PlannedMomentsKey = "plannedMoments"

	dateLayout         = "2006-01-02"
	maxPlannedTitleLen = 120
)

var wallClockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// PlannedMomentStore owns the plannedMoments key. It enforces one planned
// moment per date by reading the whole collection before every write; two
// processes saving the same date concurrently can both succeed.
type PlannedMomentStore struct {
	store    kv.Store
	bus      *events.Bus
	notifier Notifier
	logger   zerolog.Logger
	clock    *millisClock

	mu sync.Mutex
}

func NewPlannedMomentStore(store kv.Store, bus *events.Bus, notifier Notifier, logger zerolog.Logger) *PlannedMomentStore {
	if bus == nil {
		bus = events.NewBus()
	}
	return &PlannedMomentStore{
		store:    store,
		bus:      bus,
		notifier: notifier,
		logger:   logger.With().Str("store", "planned_moments").Logger(),
		clock:    newMillisClock(time.Now),
	}
}

func (service *PlannedMomentStore) Subscribe(onChange func()) func() {
	return service.bus.Subscribe(onChange)
}

// LoadAll returns planned moments in persisted (insertion) order.
func (service *PlannedMomentStore) LoadAll() []models.PlannedMoment {
	return loadList[models.PlannedMoment](service.store, PlannedMomentsKey, service.logger)
}

func (service *PlannedMomentStore) LoadAllMostRecentFirst() []models.PlannedMoment {
	moments := service.LoadAll()
	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].CreatedAt > moments[j].CreatedAt
	})
	return moments
}

func (service *PlannedMomentStore) Save(input models.PlannedMomentInput) (moment models.PlannedMoment, err error) {
	defer func() {
		metrics.ObserveStoreOperation("planned_moments", "save", FailureKind(err))
	}()

	input, err = normalizePlannedMomentInput(input)
	if err != nil {
		return models.PlannedMoment{}, err
	}

	service.mu.Lock()
	moments := service.LoadAll()
	for _, existing := range moments {
		if existing.Date == input.Date {
			service.mu.Unlock()
			return models.PlannedMoment{}, fmt.Errorf("%w: %s", ErrDuplicateDate, input.Date)
		}
	}
	wasEmpty := len(moments) == 0

	createdAt := service.clock.Next()
	id, err := newRecordID("moment", createdAt)
	if err != nil {
		service.mu.Unlock()
		return models.PlannedMoment{}, err
	}

	moment = models.PlannedMoment{
		ID:        id,
		Date:      input.Date,
		Time:      input.Time,
		Title:     input.Title,
		WithWho:   input.WithWho,
		Color:     ColorForDate(input.Date),
		CreatedAt: createdAt,
	}
	if err := persistJSON(service.store, PlannedMomentsKey, append(moments, moment)); err != nil {
		service.mu.Unlock()
		service.logger.Error().Err(err).Str("date", input.Date).Msg("save planned moment failed")
		return models.PlannedMoment{}, err
	}
	service.mu.Unlock()

	service.bus.Announce()
	if wasEmpty {
		notifyOnce(service.notifier, models.NotificationFirstPlannedMoment, service.logger)
	}
	return moment, nil
}

// Delete removes the planned moment with id. An unknown id is a no-op that
// neither writes nor announces.
func (service *PlannedMomentStore) Delete(id string) (deleted bool, err error) {
	defer func() {
		result := FailureKind(err)
		if err == nil && !deleted {
			result = FailureNotFound
		}
		metrics.ObserveStoreOperation("planned_moments", "delete", result)
	}()

	service.mu.Lock()
	moments := service.LoadAll()
	index := -1
	for i := range moments {
		if moments[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		service.mu.Unlock()
		return false, nil
	}

	remaining := append(moments[:index:index], moments[index+1:]...)
	if err := persistJSON(service.store, PlannedMomentsKey, remaining); err != nil {
		service.mu.Unlock()
		return false, err
	}
	service.mu.Unlock()

	service.bus.Announce()
	return true, nil
}

func (service *PlannedMomentStore) GetByID(id string) (models.PlannedMoment, bool) {
	for _, moment := range service.LoadAll() {
		if moment.ID == id {
			return moment, true
		}
	}
	return models.PlannedMoment{}, false
}

// GetForDate returns every planned moment on date ordered by time. The
// one-per-date rule is not assumed here.
func (service *PlannedMomentStore) GetForDate(date string) []models.PlannedMoment {
	date = strings.TrimSpace(date)
	matches := make([]models.PlannedMoment, 0, 1)
	for _, moment := range service.LoadAll() {
		if moment.Date == date {
			matches = append(matches, moment)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Time < matches[j].Time
	})
	return matches
}

func (service *PlannedMomentStore) GetForDay(day time.Time) []models.PlannedMoment {
	return service.GetForDate(DateKey(day))
}

func (service *PlannedMomentStore) GetDatesWithMoments() map[string]struct{} {
	dates := make(map[string]struct{})
	for _, moment := range service.LoadAll() {
		dates[moment.Date] = struct{}{}
	}
	return dates
}

// GetColorMap recomputes each date's color instead of trusting the stored
// color field, which may come from an older palette.
func (service *PlannedMomentStore) GetColorMap() map[string]string {
	dates := service.GetDatesWithMoments()
	colors := make(map[string]string, len(dates))
	for date := range dates {
		colors[date] = ColorForDate(date)
	}
	return colors
}

func normalizePlannedMomentInput(input models.PlannedMomentInput) (models.PlannedMomentInput, error) {
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Title = strings.TrimSpace(input.Title)
	input.WithWho = strings.TrimSpace(input.WithWho)

	if _, err := time.Parse(dateLayout, input.Date); err != nil || len(input.Date) != len(dateLayout) {
		return input, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, input.Date)
	}
	if !wallClockPattern.MatchString(input.Time) {
		return input, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidInput, input.Time)
	}
	if input.WithWho != "" && !models.IsWithWho(input.WithWho) {
		return input, fmt.Errorf("%w: unknown companion %q", ErrInvalidInput, input.WithWho)
	}
	if len([]rune(input.Title)) > maxPlannedTitleLen {
		return input, fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, maxPlannedTitleLen)
	}
	return input, nil
}
