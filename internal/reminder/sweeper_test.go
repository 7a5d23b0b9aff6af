package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

type fakeBookingRepo struct {
	due        []*domain.Booking
	marked     []int64
	markErrFor int64
}

func (r *fakeBookingRepo) GetDueReminders(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return r.due, nil
}

func (r *fakeBookingRepo) MarkReminderSent(_ context.Context, id int64) error {
	if id == r.markErrFor {
		return errors.New("update failed")
	}
	r.marked = append(r.marked, id)
	return nil
}

type fakeNotifier struct {
	sent       []string
	failForTel string
}

func (n *fakeNotifier) Send(_ context.Context, to, _ string) error {
	if to == n.failForTel {
		return errors.New("gateway unavailable")
	}
	n.sent = append(n.sent, to)
	return nil
}

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func dueBooking(id int64, phone string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerName:  "Dana",
		CustomerPhone: phone,
		Date:          time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC),
		StartTime:     "14:00",
		Status:        domain.StatusConfirmed,
	}
}

func TestSweepSendsAndMarks(t *testing.T) {
	repo := &fakeBookingRepo{due: []*domain.Booking{
		dueBooking(1, "+13035550101"),
		dueBooking(2, "+13035550102"),
	}}
	notifier := &fakeNotifier{}

	s := NewSweeper(repo, notifier, fakeClock{now: time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC)}, nopLogger{})
	s.Run(context.Background())

	assert.Equal(t, []string{"+13035550101", "+13035550102"}, notifier.sent)
	assert.Equal(t, []int64{1, 2}, repo.marked)
}

func TestSweepFailedSendLeavesUnmarked(t *testing.T) {
	repo := &fakeBookingRepo{due: []*domain.Booking{
		dueBooking(1, "+13035550101"),
		dueBooking(2, "+13035550102"),
	}}
	notifier := &fakeNotifier{failForTel: "+13035550101"}

	s := NewSweeper(repo, notifier, fakeClock{now: time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC)}, nopLogger{})
	s.Run(context.Background())

	// Неотправленное напоминание не помечается и уйдет при следующем запуске
	assert.Equal(t, []int64{2}, repo.marked)
}

func TestSweepNothingDue(t *testing.T) {
	repo := &fakeBookingRepo{}
	notifier := &fakeNotifier{}

	s := NewSweeper(repo, notifier, fakeClock{now: time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC)}, nopLogger{})
	s.Run(context.Background())

	assert.Empty(t, notifier.sent)
	assert.Empty(t, repo.marked)
}
