package domain

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// Booking represents a customer appointment request in the system.
// A booking in status pending or confirmed holds slot-ledger rows for its
// occupied range; cancelled and rejected bookings are deleted together with
// their ledger rows.
type Booking struct {
	ID              int64
	CustomerName    string
	CustomerPhone   string
	ServiceID       int64
	ServiceName     string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	TotalPrice      float64
	Addons          []string
	Status          BookingStatus

	NailArtNotes *string
	AdminNotes   *string
	ImageRefs    []string

	ReminderSent bool

	// Previous placement, recorded on reschedule for audit
	PreviousDate  *time.Time
	PreviousStart *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking currently holds its slots
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can be confirmed by the operator
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeRejected returns true if the booking can be rejected by the operator
func (b *Booking) CanBeRejected() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to a new
// date or time; the move resets it to pending for re-confirmation
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo централизованная проверка допустимости перехода статуса
// Все изменения статуса идут через нее, а не через разрозненные проверки
// по обработчикам
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch target {
	case StatusConfirmed:
		return b.CanBeConfirmed()
	case StatusRejected:
		return b.CanBeRejected()
	case StatusCancelled:
		return b.CanBeCancelled()
	case StatusPending:
		// возврат в pending возможен только через reschedule
		return b.CanBeRescheduled()
	default:
		return false
	}
}

// SameDay reports whether the booking is on the given calendar date.
func (b *Booking) SameDay(date time.Time) bool {
	y1, m1, d1 := b.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
