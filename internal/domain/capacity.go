package domain

import (
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// CanFit reports whether enough consecutive free slots exist in the snapshot
// to host an appointment of the given duration starting at start. The walk
// stops at the first unavailable slot, and a placement whose required range
// would run past the end of the grid does not fit.
//
// The checker is purely mechanical: when re-checking a booking being moved,
// the caller must supply a snapshot built with that booking's own occupied
// range already marked available (SnapshotInput.ExcludeBookingID).
func CanFit(grid *TimeGrid, snapshot *AvailabilitySnapshot, start types.TimeString, durationMinutes int) (bool, error) {
	startIdx, err := grid.IndexOf(start)
	if err != nil {
		return false, err
	}

	needed := SlotsNeeded(durationMinutes)
	if startIdx+needed > grid.SlotCount() {
		return false, nil
	}

	for i := 0; i < needed; i++ {
		label, err := grid.LabelAt(startIdx + i)
		if err != nil {
			return false, err
		}
		if !snapshot.IsAvailable(label) {
			return false, nil
		}
	}

	return true, nil
}
