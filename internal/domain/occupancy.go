package domain

import (
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// SlotsNeeded returns how many consecutive grid slots an appointment of the
// given duration occupies, cleanup buffer included. This is the only place
// buffer math lives; every reserve and release call site goes through it.
func SlotsNeeded(durationMinutes int) int {
	total := durationMinutes + BufferMinutes
	return (total + SlotMinutes - 1) / SlotMinutes
}

// OccupiedSlots returns the ordered set of grid slots an appointment
// starting at start with the given duration occupies. The range is
// truncated at the end of the grid: a booking may legitimately run to
// closing time, and placements that genuinely need capacity past closing
// are rejected by CanFit before anything is reserved.
//
// Pure and idempotent: identical inputs always produce the identical,
// order-preserved result.
func OccupiedSlots(grid *TimeGrid, start types.TimeString, durationMinutes int) ([]types.TimeString, error) {
	startIdx, err := grid.IndexOf(start)
	if err != nil {
		return nil, err
	}

	needed := SlotsNeeded(durationMinutes)

	occupied := make([]types.TimeString, 0, needed)
	for i := 0; i < needed; i++ {
		idx := startIdx + i
		if idx >= grid.SlotCount() {
			break
		}
		label, err := grid.LabelAt(idx)
		if err != nil {
			return nil, err
		}
		occupied = append(occupied, label)
	}

	return occupied, nil
}
