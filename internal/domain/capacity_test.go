package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptySnapshot(t *testing.T, grid *TimeGrid) *AvailabilitySnapshot {
	t.Helper()
	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date: date(2025, time.June, 10),
		Now:  time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return snap
}

func TestCanFitOnEmptyDay(t *testing.T) {
	grid := newTestGrid(t)
	snap := emptySnapshot(t, grid)

	ok, err := CanFit(grid, snap, "14:00", 60)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanFitStopsAtFirstUnavailable(t *testing.T) {
	grid := newTestGrid(t)

	snap, err := BuildSnapshot(grid, SnapshotInput{
		Date: date(2025, time.June, 10),
		Bookings: []*Booking{
			{ID: 1, StartTime: "15:00", DurationMinutes: 30, Status: StatusPending},
		},
		Now: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 14:00 + 60 минут занимает 14:00-15:00, а 15:00 уже занят
	ok, err := CanFit(grid, snap, "14:00", 60)
	require.NoError(t, err)
	assert.False(t, ok)

	// 13:00 + 60 минут занимает 13:00-14:00 и помещается
	ok, err = CanFit(grid, snap, "13:00", 60)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanFitRejectsRangePastClosing(t *testing.T) {
	grid := newTestGrid(t)
	snap := emptySnapshot(t, grid)

	// 20:00 - последний слот; 30+15 минут требуют два слота
	ok, err := CanFit(grid, snap, "20:00", 30)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CanFit(grid, snap, "19:30", 30)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanFitStartNotInGrid(t *testing.T) {
	grid := newTestGrid(t)
	snap := emptySnapshot(t, grid)

	_, err := CanFit(grid, snap, "14:10", 30)
	assert.ErrorIs(t, err, ErrSlotNotInGrid)
}
