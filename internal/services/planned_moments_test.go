package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/models"
)

func TestPlannedMomentSaveOnEmptyStoreNotifies(t *testing.T) {
	stores := newMomentStores(t, 0)
	counter := &announceCounter{}
	stores.planned.Subscribe(counter.observe)

	moment, err := stores.planned.Save(models.PlannedMomentInput{
		Date:    "2026-03-01",
		Time:    "09:00",
		Title:   "Breakfast",
		WithWho: models.WithWhoSolo,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(moment.ID, "moment_"), "id %q", moment.ID)
	assert.Equal(t, ColorForDate("2026-03-01"), moment.Color)
	assert.NotZero(t, moment.CreatedAt)
	assert.Equal(t, 1, counter.value())

	notifications := stores.notifications.LoadAll()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationFirstPlannedMoment, notifications[0].Type)
	assert.False(t, notifications[0].Read)
}

func TestPlannedMomentRejectsDuplicateDate(t *testing.T) {
	stores := newMomentStores(t, 0)

	_, err := stores.planned.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00"})
	require.NoError(t, err)

	_, err = stores.planned.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "18:30", Title: "Dinner"})
	require.ErrorIs(t, err, ErrDuplicateDate)
	assert.Equal(t, FailureDuplicateDate, FailureKind(err))
	assert.Len(t, stores.planned.LoadAll(), 1)
}

func TestPlannedMomentUniqueDatesAcrossSaves(t *testing.T) {
	stores := newMomentStores(t, 0)
	dates := []string{"2026-03-01", "2026-03-02", "2026-03-01", "2026-03-03", "2026-03-02"}
	for _, date := range dates {
		_, _ = stores.planned.Save(models.PlannedMomentInput{Date: date, Time: "10:00"})
	}

	seen := map[string]bool{}
	for _, moment := range stores.planned.LoadAll() {
		assert.False(t, seen[moment.Date], "date %s stored twice", moment.Date)
		seen[moment.Date] = true
	}
	assert.Len(t, seen, 3)
	assert.Len(t, stores.planned.GetDatesWithMoments(), 3)
}

func TestPlannedMomentSaveValidatesInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input models.PlannedMomentInput
	}{
		{name: "bad date", input: models.PlannedMomentInput{Date: "03/01/2026", Time: "09:00"}},
		{name: "impossible date", input: models.PlannedMomentInput{Date: "2026-02-30", Time: "09:00"}},
		{name: "bad time", input: models.PlannedMomentInput{Date: "2026-03-01", Time: "9am"}},
		{name: "hour out of range", input: models.PlannedMomentInput{Date: "2026-03-01", Time: "24:00"}},
		{name: "unknown companion", input: models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00", WithWho: "Coworkers"}},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			store := NewPlannedMomentStore(kv.NewMemoryStore(0), nil, nil, zerolog.Nop())
			_, err := store.Save(testCase.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Save(%+v) error = %v, want ErrInvalidInput", testCase.input, err)
			}
			if len(store.LoadAll()) != 0 {
				t.Fatal("invalid input must not be persisted")
			}
		})
	}
}

func TestPlannedMomentDeleteUnknownIDIsNoOp(t *testing.T) {
	stores := newMomentStores(t, 0)
	_, err := stores.planned.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00"})
	require.NoError(t, err)

	before, _, err := stores.durable.Get(PlannedMomentsKey)
	require.NoError(t, err)
	counter := &announceCounter{}
	stores.planned.Subscribe(counter.observe)

	deleted, err := stores.planned.Delete("moment_0_missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	after, _, err := stores.durable.Get(PlannedMomentsKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Zero(t, counter.value())
}

func TestPlannedMomentDeleteRemovesRecord(t *testing.T) {
	stores := newMomentStores(t, 0)
	first, err := stores.planned.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00"})
	require.NoError(t, err)
	second, err := stores.planned.Save(models.PlannedMomentInput{Date: "2026-03-02", Time: "09:00"})
	require.NoError(t, err)

	deleted, err := stores.planned.Delete(first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	remaining := stores.planned.LoadAll()
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)

	_, err = stores.planned.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "12:00"})
	assert.NoError(t, err, "a freed date can be planned again")
}

func TestPlannedMomentQueries(t *testing.T) {
	durable := kv.NewMemoryStore(0)
	// Legacy data can hold two moments on one date with a stale color.
	require.NoError(t, kv.SetJSON(durable, PlannedMomentsKey, []models.PlannedMoment{
		{ID: "moment_1_a", Date: "2026-03-01", Time: "18:00", Color: "#ff0000", CreatedAt: 1},
		{ID: "moment_3_c", Date: "2026-03-02", Time: "08:00", Color: "#00ff00", CreatedAt: 3},
		{ID: "moment_2_b", Date: "2026-03-01", Time: "07:30", Color: "#ff0000", CreatedAt: 2},
	}))
	store := NewPlannedMomentStore(durable, nil, nil, zerolog.Nop())

	onDate := store.GetForDate("2026-03-01")
	require.Len(t, onDate, 2)
	assert.Equal(t, "moment_2_b", onDate[0].ID)
	assert.Equal(t, "moment_1_a", onDate[1].ID)

	onDay := store.GetForDay(time.Date(2026, time.March, 2, 23, 59, 0, 0, time.UTC))
	require.Len(t, onDay, 1)
	assert.Equal(t, "moment_3_c", onDay[0].ID)

	recent := store.LoadAllMostRecentFirst()
	assert.Equal(t, []string{"moment_3_c", "moment_2_b", "moment_1_a"}, plannedIDs(recent))
	assert.Equal(t, []string{"moment_1_a", "moment_3_c", "moment_2_b"}, plannedIDs(store.LoadAll()))

	assert.Equal(t, map[string]string{
		"2026-03-01": ColorForDate("2026-03-01"),
		"2026-03-02": ColorForDate("2026-03-02"),
	}, store.GetColorMap())

	found, ok := store.GetByID("moment_3_c")
	assert.True(t, ok)
	assert.Equal(t, "2026-03-02", found.Date)
}

func TestPlannedMomentMalformedDataReadsAsEmpty(t *testing.T) {
	durable := kv.NewMemoryStore(0)
	require.NoError(t, durable.Set(PlannedMomentsKey, "{not json"))
	store := NewPlannedMomentStore(durable, nil, nil, zerolog.Nop())

	assert.Empty(t, store.LoadAll())
	_, err := store.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00"})
	require.NoError(t, err)
	assert.Len(t, store.LoadAll(), 1)
}

func TestPlannedMomentSaveMapsPersistenceFailures(t *testing.T) {
	full := NewPlannedMomentStore(kv.NewMemoryStore(16), nil, nil, zerolog.Nop())
	_, err := full.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00"})
	require.ErrorIs(t, err, ErrStorageFull)
	assert.Equal(t, FailureStorageFull, FailureKind(err))

	broken := NewPlannedMomentStore(failingStore{Store: kv.NewMemoryStore(0), err: errors.New("disk I/O error")}, nil, nil, zerolog.Nop())
	_, err = broken.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00"})
	require.ErrorIs(t, err, ErrUnknown)
	assert.Equal(t, FailureUnknown, FailureKind(err))
}

func TestPlannedMomentCreatedAtStrictlyIncreases(t *testing.T) {
	stores := newMomentStores(t, 0)
	var last int64
	for day := 1; day <= 5; day++ {
		moment, err := stores.planned.Save(models.PlannedMomentInput{
			Date: time.Date(2026, time.April, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Time: "09:00",
		})
		require.NoError(t, err)
		assert.Greater(t, moment.CreatedAt, last)
		last = moment.CreatedAt
	}
}

// Two processes sharing the durable namespace do not coordinate: each reads
// the whole collection, checks for a duplicate date and writes it back. A
// write that lands between another process's read and write is lost while
// both callers see success.
func TestPlannedMomentCrossProcessSaveRaceIsLastWriteWins(t *testing.T) {
	shared := kv.NewMemoryStore(0)
	first := NewPlannedMomentStore(shared, events.NewBus(), nil, zerolog.Nop())

	var firstErr error
	interleaved := &hookedStore{Store: shared}
	interleaved.beforeSet = func() {
		_, firstErr = first.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "09:00", Title: "first"})
	}
	second := NewPlannedMomentStore(interleaved, events.NewBus(), nil, zerolog.Nop())

	saved, err := second.Save(models.PlannedMomentInput{Date: "2026-03-01", Time: "10:00", Title: "second"})
	require.NoError(t, firstErr)
	require.NoError(t, err)

	stored := first.LoadAll()
	require.Len(t, stored, 1)
	assert.Equal(t, saved.ID, stored[0].ID)
}

func plannedIDs(moments []models.PlannedMoment) []string {
	ids := make([]string, 0, len(moments))
	for _, moment := range moments {
		ids = append(ids, moment.ID)
	}
	return ids
}
