package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in   string
		want TimeString
	}{
		{"09:00", "09:00"},
		{"14:30", "14:30"},
		{"9:00 AM", "09:00"},
		{"2:00 PM", "14:00"},
		{"12:00 PM", "12:00"},
		{"12:30 AM", "00:30"},
	}

	for _, tt := range tests {
		got, err := NewTimeStringFromString(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewTimeStringFromStringInvalid(t *testing.T) {
	for _, in := range []string{"", "25:00", "9am", "half past nine"} {
		_, err := NewTimeStringFromString(in)
		assert.ErrorIs(t, err, ErrInvalidTimeString, in)
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "2:00 PM", TimeString("14:00").Display())
	assert.Equal(t, "9:30 AM", TimeString("09:30").Display())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Display())
}

func TestMinutesAndBack(t *testing.T) {
	m, err := TimeString("14:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, m)

	ts, err := NewTimeStringFromMinutes(m)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:30"), ts)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrNegativeMinutes)
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	// слоты не пересекают полночь
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("15:30").IsAfter("09:00"))
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:00")))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:00"), ts)

	assert.Error(t, ts.Scan(42))
}
