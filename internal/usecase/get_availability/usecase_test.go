package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	byDate  map[string][]*domain.Booking
	failOn  map[string]error
	queried []string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byDate: make(map[string][]*domain.Booking),
		failOn: make(map[string]error),
	}
}

func (r *fakeBookingRepo) GetByDate(_ context.Context, date time.Time, _ bool) ([]*domain.Booking, error) {
	key := date.Format(domain.DateFormat)
	r.queried = append(r.queried, key)
	if err := r.failOn[key]; err != nil {
		return nil, err
	}
	return r.byDate[key], nil
}

type fakeBlockRepo struct {
	dayBlocks  map[string]bool
	slotBlocks map[string][]domain.SlotBlock
	dayErr     error
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{
		dayBlocks:  make(map[string]bool),
		slotBlocks: make(map[string][]domain.SlotBlock),
	}
}

func (r *fakeBlockRepo) GetDayBlocks(context.Context, time.Time, time.Time) (map[string]bool, error) {
	if r.dayErr != nil {
		return nil, r.dayErr
	}
	return r.dayBlocks, nil
}

func (r *fakeBlockRepo) GetSlotBlocks(context.Context, time.Time, time.Time) (map[string][]domain.SlotBlock, error) {
	return r.slotBlocks, nil
}

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testGrid(t *testing.T) *domain.TimeGrid {
	t.Helper()
	grid, err := domain.NewTimeGrid("09:00", "20:00", "18:30")
	require.NoError(t, err)
	return grid
}

func newTestUseCase(t *testing.T, bookings *fakeBookingRepo, blocks *fakeBlockRepo, now time.Time) *UseCase {
	t.Helper()
	return NewUseCase(
		bookings, blocks, testGrid(t),
		domain.DefaultWindowDays, domain.DefaultMinNoticeMinutes,
		fakeClock{now: now}, nopLogger{},
	)
}

func TestGetAvailabilityDefaultsToFullWindow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(t, newFakeBookingRepo(), newFakeBlockRepo(), now)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	require.Len(t, resp.Days, domain.DefaultWindowDays)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), resp.Days[0].Date)
	assert.Equal(t, time.Date(2025, time.July, 30, 0, 0, 0, 0, time.UTC), resp.Days[59].Date)
}

func TestGetAvailabilityClampsAtWindowEnd(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(t, newFakeBookingRepo(), newFakeBlockRepo(), now)

	// Запрос из конца окна обрезается, а не ошибается
	resp, err := uc.Execute(context.Background(), &Request{
		From: time.Date(2025, time.July, 28, 0, 0, 0, 0, time.UTC),
		Days: 10,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 3)
	assert.Equal(t, time.Date(2025, time.July, 30, 0, 0, 0, 0, time.UTC), resp.Days[2].Date)
}

func TestGetAvailabilityBlockedDaySkipsBookingQuery(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	blocks.dayBlocks["2025-06-02"] = true
	uc := newTestUseCase(t, bookings, blocks, now)

	resp, err := uc.Execute(context.Background(), &Request{Days: 3})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	blocked := resp.Days[1]
	require.NotNil(t, blocked.Snapshot)
	for _, s := range blocked.Snapshot.Slots {
		assert.False(t, s.Available)
		assert.Equal(t, domain.ReasonDayBlocked, s.Reason)
	}

	// Для заблокированного дня бронирования не запрашиваются
	assert.NotContains(t, bookings.queried, "2025-06-02")
	assert.Contains(t, bookings.queried, "2025-06-01")
	assert.Contains(t, bookings.queried, "2025-06-03")
}

func TestGetAvailabilityPerDateErrorIsolation(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	bookings := newFakeBookingRepo()
	bookings.failOn["2025-06-02"] = errors.New("connection reset")
	uc := newTestUseCase(t, bookings, newFakeBlockRepo(), now)

	resp, err := uc.Execute(context.Background(), &Request{Days: 3})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.NotNil(t, resp.Days[0].Snapshot)
	assert.Empty(t, resp.Days[0].Err)

	assert.Nil(t, resp.Days[1].Snapshot)
	assert.Contains(t, resp.Days[1].Err, "connection reset")

	assert.NotNil(t, resp.Days[2].Snapshot)
	assert.Empty(t, resp.Days[2].Err)
}

func TestGetAvailabilityBatchErrorMarksAllDates(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	blocks := newFakeBlockRepo()
	blocks.dayErr = errors.New("timeout")
	uc := newTestUseCase(t, newFakeBookingRepo(), blocks, now)

	resp, err := uc.Execute(context.Background(), &Request{Days: 2})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	for _, day := range resp.Days {
		assert.Nil(t, day.Snapshot)
		assert.Contains(t, day.Err, "timeout")
	}
}

func TestGetAvailabilityMixedDay(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	bookings := newFakeBookingRepo()
	bookings.byDate["2025-06-10"] = []*domain.Booking{
		{ID: 1, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	blocks := newFakeBlockRepo()
	held := int64(1)
	blocks.slotBlocks["2025-06-10"] = []domain.SlotBlock{
		{Start: "11:00", BookingID: nil},   // ручная блокировка
		{Start: "14:00", BookingID: &held}, // слот записи, причина должна быть "already booked"
	}

	uc := newTestUseCase(t, bookings, blocks, now)

	resp, err := uc.Execute(context.Background(), &Request{
		From: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Days: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	snap := resp.Days[0].Snapshot
	require.NotNil(t, snap)

	reasons := make(map[types.TimeString]string)
	for _, s := range snap.Slots {
		if !s.Available {
			reasons[s.Start] = s.Reason
		}
	}

	assert.Equal(t, domain.ReasonSlotBlocked, reasons["11:00"])
	assert.Equal(t, domain.ReasonBooked, reasons["14:00"])
	assert.Equal(t, domain.ReasonBooked, reasons["14:30"])
	assert.Equal(t, domain.ReasonBooked, reasons["15:00"])
	assert.Len(t, reasons, 4)
}

func TestGetAvailabilityRejectsPastAndBeyondWindow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(t, newFakeBookingRepo(), newFakeBlockRepo(), now)

	_, err := uc.Execute(context.Background(), &Request{
		From: time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		From: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
