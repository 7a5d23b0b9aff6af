package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotReason(t *testing.T, snap *AvailabilitySnapshot, start types.TimeString) SlotAvailability {
	t.Helper()
	for _, s := range snap.Slots {
		if s.Start == start {
			return s
		}
	}
	t.Fatalf("slot %s not in snapshot", start)
	return SlotAvailability{}
}

func TestBuildSnapshotEmptyDateFullyAvailable(t *testing.T) {
	grid := newTestGrid(t)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date:             date(2025, time.June, 10),
		Now:              time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
		MinNoticeMinutes: DefaultMinNoticeMinutes,
	})
	require.NoError(t, err)

	require.Len(t, snap.Slots, grid.SlotCount())
	for _, s := range snap.Slots {
		assert.True(t, s.Available, "slot %s", s.Start)
		assert.Empty(t, s.Reason)
	}
}

func TestBuildSnapshotDayBlockShortCircuits(t *testing.T) {
	grid := newTestGrid(t)

	// Осиротевшее бронирование на заблокированную дату не меняет вердикт
	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date:       date(2025, time.June, 10),
		DayBlocked: true,
		Bookings: []*Booking{
			{ID: 7, StartTime: "14:00", DurationMinutes: 60, Status: StatusConfirmed},
		},
		Now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, snap.Slots, grid.SlotCount())
	for _, s := range snap.Slots {
		assert.False(t, s.Available)
		assert.Equal(t, ReasonDayBlocked, s.Reason)
	}
}

func TestBuildSnapshotManualBlock(t *testing.T) {
	grid := newTestGrid(t)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date:         date(2025, time.June, 10),
		ManualBlocks: []types.TimeString{"11:00"},
		Now:          time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	blocked := slotReason(t, snap, "11:00")
	assert.False(t, blocked.Available)
	assert.Equal(t, ReasonSlotBlocked, blocked.Reason)

	assert.True(t, snap.IsAvailable("10:30"))
	assert.True(t, snap.IsAvailable("11:30"))
}

func TestBuildSnapshotBookingOccupiesRangeWithBuffer(t *testing.T) {
	grid := newTestGrid(t)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date: date(2025, time.June, 10),
		Bookings: []*Booking{
			{ID: 1, StartTime: "14:00", DurationMinutes: 60, Status: StatusConfirmed},
		},
		Now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	for _, start := range []types.TimeString{"14:00", "14:30", "15:00"} {
		s := slotReason(t, snap, start)
		assert.False(t, s.Available, "slot %s", start)
		assert.Equal(t, ReasonBooked, s.Reason)
	}

	assert.True(t, snap.IsAvailable("13:30"))
	assert.True(t, snap.IsAvailable("15:30"))
}

func TestBuildSnapshotAdvanceNoticeBoundary(t *testing.T) {
	grid := newTestGrid(t)
	today := time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date:             date(2025, time.June, 10),
		Now:              today,
		MinNoticeMinutes: DefaultMinNoticeMinutes,
	})
	require.NoError(t, err)

	// now = 10:00, notice = 2h: 12:00 доступен, 11:30 - нет
	assert.True(t, snap.IsAvailable("12:00"))

	tooSoon := slotReason(t, snap, "11:30")
	assert.False(t, tooSoon.Available)
	assert.Equal(t, ReasonAdvanceNotice, tooSoon.Reason)
}

func TestBuildSnapshotNoticeOnlyAppliesToday(t *testing.T) {
	grid := newTestGrid(t)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date:             date(2025, time.June, 11),
		Now:              time.Date(2025, time.June, 10, 19, 0, 0, 0, time.UTC),
		MinNoticeMinutes: DefaultMinNoticeMinutes,
	})
	require.NoError(t, err)

	assert.True(t, snap.IsAvailable("09:00"))
}

func TestBuildSnapshotExcludesOwnBooking(t *testing.T) {
	grid := newTestGrid(t)

	in := SnapshotInput{
		Date: date(2025, time.June, 10),
		Bookings: []*Booking{
			{ID: 5, StartTime: "14:00", DurationMinutes: 60, Status: StatusConfirmed},
			{ID: 6, StartTime: "17:00", DurationMinutes: 30, Status: StatusPending},
		},
		Now:              time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
		ExcludeBookingID: 5,
	}

	snap, err := BuildSnapshot(grid, in)
	require.NoError(t, err)

	// собственный диапазон свободен, чужой - занят
	assert.True(t, snap.IsAvailable("14:00"))
	assert.True(t, snap.IsAvailable("15:00"))
	assert.False(t, snap.IsAvailable("17:00"))
}

func TestBuildSnapshotCancelledBookingReleasesSlots(t *testing.T) {
	grid := newTestGrid(t)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date: date(2025, time.June, 10),
		Bookings: []*Booking{
			{ID: 2, StartTime: "14:00", DurationMinutes: 60, Status: StatusCancelled},
		},
		Now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, snap.IsAvailable("14:00"))
}
