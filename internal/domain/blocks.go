package domain

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// DayBlock marks an entire date as unbookable. Created and removed by
// operator action only; while present it overrides all other state for
// that date.
type DayBlock struct {
	Date      time.Time
	CreatedAt time.Time
}

// SlotBlock is one reserved grid slot on a date. Rows with a BookingID
// belong to a booking's occupied range and are managed exclusively by the
// booking lifecycle; rows without one are manual operator blocks.
// The store enforces uniqueness on (date, start).
type SlotBlock struct {
	Date      time.Time
	Start     types.TimeString
	BookingID *int64
	CreatedAt time.Time
}

// IsManual returns true if the block was placed by the operator rather
// than reserved by a booking
func (b *SlotBlock) IsManual() bool {
	return b.BookingID == nil
}
