package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	blocksRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/blocks"
	bookingRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/booking"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	byID map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByDate(_ context.Context, date time.Time, _ bool) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.Date.Equal(date) && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateSchedule(
	_ context.Context,
	id int64,
	newDate time.Time,
	newStart types.TimeString,
	newDurationMinutes int,
	prevDate time.Time,
	prevStart types.TimeString,
) error {
	b, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Date = newDate
	b.StartTime = newStart
	b.DurationMinutes = newDurationMinutes
	b.Status = domain.StatusPending
	b.PreviousDate = &prevDate
	b.PreviousStart = &prevStart
	return nil
}

type fakeBlockRepo struct {
	blockedDays map[string]bool
	ledger      map[string]*int64
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blockedDays: make(map[string]bool), ledger: make(map[string]*int64)}
}

func ledgerKey(date time.Time, start types.TimeString) string {
	return date.Format(domain.DateFormat) + " " + start.String()
}

func (r *fakeBlockRepo) IsDayBlocked(_ context.Context, date time.Time) (bool, error) {
	return r.blockedDays[date.Format(domain.DateFormat)], nil
}

func (r *fakeBlockRepo) GetSlotBlocksForDate(_ context.Context, date time.Time) ([]domain.SlotBlock, error) {
	var blocks []domain.SlotBlock
	prefix := date.Format(domain.DateFormat) + " "
	for key, bookingID := range r.ledger {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			blocks = append(blocks, domain.SlotBlock{
				Date:      date,
				Start:     types.TimeString(key[len(prefix):]),
				BookingID: bookingID,
			})
		}
	}
	return blocks, nil
}

func (r *fakeBlockRepo) InsertSlotBlocks(_ context.Context, date time.Time, starts []types.TimeString, bookingID *int64) error {
	for _, s := range starts {
		if _, taken := r.ledger[ledgerKey(date, s)]; taken {
			return blocksRepo.ErrSlotTaken
		}
	}
	for _, s := range starts {
		r.ledger[ledgerKey(date, s)] = bookingID
	}
	return nil
}

func (r *fakeBlockRepo) DeleteSlotBlocksByBooking(_ context.Context, bookingID int64) error {
	for key, held := range r.ledger {
		if held != nil && *held == bookingID {
			delete(r.ledger, key)
		}
	}
	return nil
}

func (r *fakeBlockRepo) holdBooking(date time.Time, id int64, starts ...types.TimeString) {
	held := id
	for _, s := range starts {
		r.ledger[ledgerKey(date, s)] = &held
	}
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeNotifier struct{ body []string }

func (n *fakeNotifier) Send(_ context.Context, _, body string) error {
	n.body = append(n.body, body)
	return nil
}

func testGrid(t *testing.T) *domain.TimeGrid {
	t.Helper()
	grid, err := domain.NewTimeGrid("09:00", "20:00", "18:30")
	require.NoError(t, err)
	return grid
}

func june(day int) time.Time {
	return time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC)
}

func seedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		CustomerName:    "Dana",
		CustomerPhone:   "+13035550101",
		ServiceName:     "Gel Manicure",
		Date:            june(10),
		StartTime:       "14:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(t *testing.T, bookings *fakeBookingRepo, blocks *fakeBlockRepo, notifier *fakeNotifier) *UseCase {
	t.Helper()
	return NewUseCase(
		bookings, blocks, fakeTxManager{}, notifier,
		testGrid(t), domain.DefaultWindowDays, domain.DefaultMinNoticeMinutes,
		fakeClock{now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func TestRescheduleIntoOwnBufferTail(t *testing.T) {
	booking := seedBooking()
	bookings := newFakeBookingRepo(booking)
	blocks := newFakeBlockRepo()
	blocks.holdBooking(june(10), 1, "14:00", "14:30", "15:00")
	notifier := &fakeNotifier{}
	uc := newTestUseCase(t, bookings, blocks, notifier)

	// Сдвиг на полчаса пересекается с собственным диапазоном записи;
	// без исключения собственных слотов такой перенос был бы невозможен
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   june(10),
		NewStart:  "14:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("14:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("14:00"), resp.PreviousStart)
	assert.Equal(t, june(10), resp.PreviousDate)
	assert.Equal(t, []string{"14:30", "15:00", "15:30"}, resp.OccupiedSlots)

	// Старые слоты освобождены, новые удержаны той же записью
	_, stillHeld := blocks.ledger[ledgerKey(june(10), "14:00")]
	assert.False(t, stillHeld)
	for _, s := range []types.TimeString{"14:30", "15:00", "15:30"} {
		held, ok := blocks.ledger[ledgerKey(june(10), s)]
		require.True(t, ok, "slot %s must be held", s)
		require.NotNil(t, held)
		assert.Equal(t, int64(1), *held)
	}

	require.Len(t, notifier.body, 1)
	assert.Contains(t, notifier.body[0], "pending re-confirmation")
}

func TestRescheduleToAnotherDate(t *testing.T) {
	booking := seedBooking()
	bookings := newFakeBookingRepo(booking)
	blocks := newFakeBlockRepo()
	blocks.holdBooking(june(10), 1, "14:00", "14:30", "15:00")
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   june(12),
		NewStart:  "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, june(12), resp.Date)
	assert.Equal(t, june(10), resp.PreviousDate)

	// На старой дате слотов не осталось
	for _, s := range []types.TimeString{"14:00", "14:30", "15:00"} {
		_, stillHeld := blocks.ledger[ledgerKey(june(10), s)]
		assert.False(t, stillHeld, "slot %s must be released", s)
	}
}

func TestRescheduleConflictWithOtherBooking(t *testing.T) {
	booking := seedBooking()
	other := &domain.Booking{
		ID: 2, CustomerPhone: "+13035550102", Date: june(10),
		StartTime: "16:00", DurationMinutes: 60, Status: domain.StatusPending,
	}
	bookings := newFakeBookingRepo(booking, other)
	blocks := newFakeBlockRepo()
	blocks.holdBooking(june(10), 1, "14:00", "14:30", "15:00")
	blocks.holdBooking(june(10), 2, "16:00", "16:30", "17:00")
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	// 15:30 + 60 + перерыв задевает 16:30 чужой записи
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   june(10),
		NewStart:  "15:30",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Чужие слоты не тронуты
	held, ok := blocks.ledger[ledgerKey(june(10), "16:00")]
	require.True(t, ok)
	require.NotNil(t, held)
	assert.Equal(t, int64(2), *held)
}

func TestRescheduleDayBlockedTarget(t *testing.T) {
	bookings := newFakeBookingRepo(seedBooking())
	blocks := newFakeBlockRepo()
	blocks.holdBooking(june(10), 1, "14:00", "14:30", "15:00")
	blocks.blockedDays["2025-06-12"] = true
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   june(12),
		NewStart:  "10:00",
	})
	assert.ErrorIs(t, err, ErrDayBlocked)
}

func TestRescheduleNotFoundAndBadStatus(t *testing.T) {
	cancelledLike := seedBooking()
	cancelledLike.Status = domain.StatusRejected
	bookings := newFakeBookingRepo(cancelledLike)
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42, NewDate: june(12), NewStart: "10:00",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID: 1, NewDate: june(12), NewStart: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
