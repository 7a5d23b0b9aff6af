package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   BookingStatus
		to     BookingStatus
		wantOK bool
	}{
		{"pending can be confirmed", StatusPending, StatusConfirmed, true},
		{"pending can be rejected", StatusPending, StatusRejected, true},
		{"pending can be cancelled", StatusPending, StatusCancelled, true},
		{"pending can be rescheduled", StatusPending, StatusPending, true},
		{"confirmed cannot be confirmed again", StatusConfirmed, StatusConfirmed, false},
		{"confirmed cannot be rejected", StatusConfirmed, StatusRejected, false},
		{"confirmed can be cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed can be rescheduled", StatusConfirmed, StatusPending, true},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"rejected is terminal", StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.wantOK, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusRejected}).IsActive())
}
