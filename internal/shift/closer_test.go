package shift

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exon-reyes/integra-ws/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	open    []OpenShift
	findErr error
	failIDs map[uuid.UUID]bool
	closed  map[uuid.UUID]models.Shift
}

func newFakeStore(open ...OpenShift) *fakeStore {
	return &fakeStore{
		open:    open,
		failIDs: make(map[uuid.UUID]bool),
		closed:  make(map[uuid.UUID]models.Shift),
	}
}

func (f *fakeStore) FindOpenShifts(ctx context.Context) ([]OpenShift, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.open, nil
}

func (f *fakeStore) CloseShift(ctx context.Context, sh *models.Shift, closeAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[sh.ID] {
		return errors.New("write conflict")
	}
	f.closed[sh.ID] = *sh
	return nil
}

func (f *fakeStore) closedShift(id uuid.UUID) (models.Shift, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sh, ok := f.closed[id]
	return sh, ok
}

func (f *fakeStore) closedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.closed)
}

type fakeLookup struct {
	night map[uuid.UUID]bool
}

func (f *fakeLookup) IsNightPosition(ctx context.Context, positionID uuid.UUID) bool {
	return f.night[positionID]
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (f *fakeNotifier) NotifyMissingCheckout(employeeName string, shiftID uuid.UUID, startAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, shiftID)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func openShift(start time.Time, positionID uuid.UUID) OpenShift {
	return OpenShift{
		Shift: models.Shift{
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			WorkDate:   time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
			StartAt:    start,
		},
		EmployeeName: "Jane Roe",
		PositionID:   positionID,
	}
}

func newTestCloser(store Store, lookup NightLookup, notifier CheckoutNotifier) *Closer {
	return NewCloser(store, lookup, notifier, NewClassifier(20), zap.NewNop(), 3)
}

func TestDaySweepClosesDayShift(t *testing.T) {
	sh := openShift(time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC), uuid.Nil)
	store := newFakeStore(sh)
	notifier := &fakeNotifier{}

	closer := newTestCloser(store, &fakeLookup{}, notifier)
	closer.CloseDayShifts(context.Background())

	closed, ok := store.closedShift(sh.Shift.ID)
	require.True(t, ok)
	require.NotNil(t, closed.EndAt)
	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC), *closed.EndAt)
	assert.True(t, closed.Closed)
	assert.True(t, closed.AutoClosed)
	assert.Equal(t, AutoCloseComment, closed.Comment)
	assert.Equal(t, 1, notifier.count())
}

func TestNightSweepClosesNightShiftNextMorning(t *testing.T) {
	sh := openShift(time.Date(2024, 1, 10, 21, 30, 0, 0, time.UTC), uuid.Nil)
	store := newFakeStore(sh)

	closer := newTestCloser(store, &fakeLookup{}, &fakeNotifier{})
	closer.CloseNightShifts(context.Background())

	closed, ok := store.closedShift(sh.Shift.ID)
	require.True(t, ok)
	require.NotNil(t, closed.EndAt)
	assert.Equal(t, time.Date(2024, 1, 11, 9, 59, 0, 0, time.UTC), *closed.EndAt)
}

func TestSweepSkipsOtherClass(t *testing.T) {
	day := openShift(time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC), uuid.Nil)
	night := openShift(time.Date(2024, 1, 10, 21, 30, 0, 0, time.UTC), uuid.Nil)
	store := newFakeStore(day, night)
	notifier := &fakeNotifier{}

	closer := newTestCloser(store, &fakeLookup{}, notifier)
	closer.CloseDayShifts(context.Background())

	_, dayClosed := store.closedShift(day.Shift.ID)
	_, nightClosed := store.closedShift(night.Shift.ID)
	assert.True(t, dayClosed)
	assert.False(t, nightClosed)
	assert.Equal(t, 1, notifier.count())

	closer.CloseNightShifts(context.Background())
	_, nightClosed = store.closedShift(night.Shift.ID)
	assert.True(t, nightClosed)
}

func TestNightPositionRoutedToNightSweep(t *testing.T) {
	positionID := uuid.New()
	sh := openShift(time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC), positionID)
	store := newFakeStore(sh)
	lookup := &fakeLookup{night: map[uuid.UUID]bool{positionID: true}}

	closer := newTestCloser(store, lookup, &fakeNotifier{})

	closer.CloseDayShifts(context.Background())
	assert.Equal(t, 0, store.closedCount())

	closer.CloseNightShifts(context.Background())
	closed, ok := store.closedShift(sh.Shift.ID)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 11, 9, 59, 0, 0, time.UTC), *closed.EndAt)
}

func TestFailedShiftDoesNotBlockSweep(t *testing.T) {
	failing := openShift(time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC), uuid.Nil)
	healthy := openShift(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), uuid.Nil)
	store := newFakeStore(failing, healthy)
	store.failIDs[failing.Shift.ID] = true
	notifier := &fakeNotifier{}

	closer := newTestCloser(store, &fakeLookup{}, notifier)
	closer.CloseDayShifts(context.Background())

	_, ok := store.closedShift(healthy.Shift.ID)
	assert.True(t, ok)
	_, ok = store.closedShift(failing.Shift.ID)
	assert.False(t, ok)
	// the failed shift must not be notified
	assert.Equal(t, 1, notifier.count())
}

func TestSweepWithFetchErrorDoesNothing(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("db down")
	notifier := &fakeNotifier{}

	closer := newTestCloser(store, &fakeLookup{}, notifier)
	closer.CloseDayShifts(context.Background())

	assert.Equal(t, 0, store.closedCount())
	assert.Equal(t, 0, notifier.count())
}

func TestCloseTimePreservesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	start := time.Date(2024, 3, 15, 21, 0, 0, 0, loc)
	got := closeTime(ClassNight, start)
	assert.Equal(t, time.Date(2024, 3, 16, 9, 59, 0, 0, loc), got)

	start = time.Date(2024, 3, 15, 9, 0, 0, 0, loc)
	got = closeTime(ClassDay, start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 0, 0, loc), got)
}
