package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

func newTestGrid(t *testing.T) *TimeGrid {
	t.Helper()
	grid, err := NewTimeGrid("09:00", "20:00", "18:30")
	require.NoError(t, err)
	return grid
}

func TestNewTimeGrid(t *testing.T) {
	grid := newTestGrid(t)

	// 9:00 AM .. 8:00 PM каждые 30 минут
	assert.Equal(t, 23, grid.SlotCount())

	first, err := grid.LabelAt(0)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), first)

	last, err := grid.LabelAt(grid.SlotCount() - 1)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("20:00"), last)
}

func TestNewTimeGridInvalidBounds(t *testing.T) {
	tests := []struct {
		name            string
		open, last, pub types.TimeString
	}{
		{"open off boundary", "09:15", "20:00", "18:30"},
		{"last before open", "09:00", "08:00", "08:00"},
		{"public cutoff outside grid", "09:00", "20:00", "21:00"},
		{"garbage open time", "morning", "20:00", "18:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeGrid(tt.open, tt.last, tt.pub)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestIndexOf(t *testing.T) {
	grid := newTestGrid(t)

	idx, err := grid.IndexOf("14:00")
	require.NoError(t, err)
	assert.Equal(t, 10, idx)

	label, err := grid.LabelAt(idx)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), label)

	_, err = grid.IndexOf("14:15")
	assert.ErrorIs(t, err, ErrSlotNotInGrid)
}

func TestLabelAtOutOfRange(t *testing.T) {
	grid := newTestGrid(t)

	_, err := grid.LabelAt(-1)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)

	_, err = grid.LabelAt(grid.SlotCount())
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
}

func TestMinutesRoundTrip(t *testing.T) {
	grid := newTestGrid(t)

	for _, label := range grid.Slots() {
		minutes, err := grid.ToMinutes(label)
		require.NoError(t, err)

		back, err := grid.FromMinutes(minutes)
		require.NoError(t, err)
		assert.Equal(t, label, back)
	}
}

func TestFromMinutesAlignment(t *testing.T) {
	grid := newTestGrid(t)

	// не на границе слота
	_, err := grid.FromMinutes(9*60 + 15)
	assert.ErrorIs(t, err, ErrInvalidAlignment)

	// на границе, но вне сетки
	_, err = grid.FromMinutes(8 * 60)
	assert.ErrorIs(t, err, ErrSlotNotInGrid)
}

func TestPublicDisplaySubset(t *testing.T) {
	grid := newTestGrid(t)

	public := grid.PublicDisplay()
	require.NotEmpty(t, public)

	// публичная витрина - строго ведущий срез канонической сетки
	full := grid.Slots()
	assert.Equal(t, full[:len(public)], public)
	assert.Equal(t, types.TimeString("18:30"), public[len(public)-1])
	assert.Less(t, len(public), grid.SlotCount())
}
