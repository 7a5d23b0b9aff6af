package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

func TestSlotsNeeded(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{15, 1},  // 15+15=30
		{30, 2},  // 30+15=45
		{45, 2},  // 45+15=60
		{60, 3},  // 60+15=75
		{90, 4},  // 90+15=105
		{120, 5}, // 120+15=135
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotsNeeded(tt.duration), "duration=%d", tt.duration)
	}
}

func TestOccupiedSlots(t *testing.T) {
	grid := newTestGrid(t)

	slots, err := OccupiedSlots(grid, "14:00", 60)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00"}, slots)
}

func TestOccupiedSlotsIdempotent(t *testing.T) {
	grid := newTestGrid(t)

	first, err := OccupiedSlots(grid, "10:30", 90)
	require.NoError(t, err)
	second, err := OccupiedSlots(grid, "10:30", 90)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOccupiedSlotsTruncatedAtClosing(t *testing.T) {
	grid := newTestGrid(t)

	// 19:30 + 60 минут требует 3 слота, но сетка заканчивается на 20:00
	slots, err := OccupiedSlots(grid, "19:30", 60)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"19:30", "20:00"}, slots)

	slots, err = OccupiedSlots(grid, "20:00", 120)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"20:00"}, slots)
}

func TestOccupiedSlotsStartNotInGrid(t *testing.T) {
	grid := newTestGrid(t)

	_, err := OccupiedSlots(grid, "14:10", 30)
	assert.ErrorIs(t, err, ErrSlotNotInGrid)
}
