package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	blocksRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/blocks"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	nextID   int64
	bookings map[string][]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: make(map[string][]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	created.ID = r.nextID
	r.nextID++
	key := b.Date.Format(domain.DateFormat)
	r.bookings[key] = append(r.bookings[key], &created)
	return &created, nil
}

func (r *fakeBookingRepo) GetByDate(_ context.Context, date time.Time, _ bool) ([]*domain.Booking, error) {
	return r.bookings[date.Format(domain.DateFormat)], nil
}

type fakeBlockRepo struct {
	blockedDays map[string]bool
	ledger      map[string]*int64 // "date time" -> booking id
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLimiter struct{ allowed bool }

func (l fakeLimiter) Allow(context.Context, string) (bool, error) { return l.allowed, nil }

type fakeNotifier struct {
	to   []string
	body []string
}

func (n *fakeNotifier) Send(_ context.Context, to, body string) error {
	n.to = append(n.to, to)
	n.body = append(n.body, body)
	return nil
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

func validRequest() *Request {
	return &Request{
		CustomerName:    "Dana",
		CustomerPhone:   "+13035550101",
		ServiceID:       3,
		ServiceName:     "Gel Manicure",
		Date:            time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		DurationMinutes: 60,
		TotalPrice:      55,
	}
}

func newTestUseCase(t *testing.T, bookings *fakeBookingRepo, blocks *fakeBlockRepo, notifier *fakeNotifier) *UseCase {
	t.Helper()
	return NewUseCase(
		bookings,
		blocks,
		fakeTxManager{},
		fakeLimiter{allowed: true},
		notifier,
		testGrid(t),
		domain.DefaultWindowDays,
		domain.DefaultMinNoticeMinutes,
		fakeClock{now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func TestCreateBookingHoldsDurationPlusBuffer(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	notifier := &fakeNotifier{}
	uc := newTestUseCase(t, bookings, blocks, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	// 60 минут + 15 минут перерыва -> три слота
	assert.Equal(t, []string{"14:00", "14:30", "15:00"}, resp.OccupiedSlots)

	for _, s := range []types.TimeString{"14:00", "14:30", "15:00"} {
		held, ok := blocks.ledger[ledgerKey(resp.Date, s)]
		require.True(t, ok, "slot %s must be held", s)
		require.NotNil(t, held)
		assert.Equal(t, resp.ID, *held)
	}

	require.Len(t, notifier.to, 1)
	assert.Equal(t, "+13035550101", notifier.to[0])
	assert.Contains(t, notifier.body[0], "received")
}

func TestCreateBookingConflictsInsideHeldRange(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Буферный слот 15:00 тоже занят, хотя сама услуга кончается в 15:00
	for _, start := range []types.TimeString{"14:00", "14:30", "15:00"} {
		req := validRequest()
		req.StartTime = start
		req.DurationMinutes = 15

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable, "start %s", start)
	}

	// Первый слот за пределами удержанного диапазона свободен
	req := validRequest()
	req.StartTime = "15:30"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"15:30", "16:00", "16:30"}, resp.OccupiedSlots)
}

func TestCreateBookingLedgerRaceReportsConflict(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	// Слот удержан в леджере записью, которой нет среди бронирований:
	// снимок гонку не видит, ее ловит уникальный констрейнт
	other := int64(99)
	req := validRequest()
	blocks.ledger[ledgerKey(req.Date, "15:00")] = &other

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBookingDayBlocked(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	req := validRequest()
	blocks.blockedDays[req.Date.Format(domain.DateFormat)] = true

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDayBlocked)
}

func TestCreateBookingManualBlockConflicts(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	req := validRequest()
	blocks.ledger[ledgerKey(req.Date, "14:30")] = nil // ручная блокировка

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBookingSameDayNotice(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	notifier := &fakeNotifier{}

	uc := NewUseCase(
		bookings, blocks, fakeTxManager{}, fakeLimiter{allowed: true}, notifier,
		testGrid(t), domain.DefaultWindowDays, domain.DefaultMinNoticeMinutes,
		fakeClock{now: time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	// now=10:00, запас 120 минут: 11:30 рано, 12:00 можно
	req := validRequest()
	req.StartTime = "11:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req = validRequest()
	req.StartTime = "12:00"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateBookingDateOutsideWindow(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	req := validRequest()
	req.Date = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	req = validRequest()
	req.Date = time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateBookingOffGridStart(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	req := validRequest()
	req.StartTime = "14:15"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// До открытия
	req = validRequest()
	req.StartTime = "08:30"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestCreateBookingPastClosingDoesNotFit(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	// 19:30 + 60 минут выходит за конец сетки
	req := validRequest()
	req.StartTime = "19:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Последний слот сетки не вмещает даже короткую услугу с перерывом
	req = validRequest()
	req.StartTime = "20:00"
	req.DurationMinutes = 30
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBookingRateLimited(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()

	uc := NewUseCase(
		bookings, blocks, fakeTxManager{}, fakeLimiter{allowed: false}, &fakeNotifier{},
		testGrid(t), domain.DefaultWindowDays, domain.DefaultMinNoticeMinutes,
		fakeClock{now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCreateBookingValidation(t *testing.T) {
	bookings := newFakeBookingRepo()
	blocks := newFakeBlockRepo()
	uc := newTestUseCase(t, bookings, blocks, &fakeNotifier{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty name", func(r *Request) { r.CustomerName = "  " }},
		{"empty phone", func(r *Request) { r.CustomerPhone = "" }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"bad start", func(r *Request) { r.StartTime = "25:99" }},
		{"duration too short", func(r *Request) { r.DurationMinutes = 10 }},
		{"duration too long", func(r *Request) { r.DurationMinutes = 500 }},
		{"negative price", func(r *Request) { r.TotalPrice = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
