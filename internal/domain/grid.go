package domain

import (
	"errors"
	"fmt"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

var (
	// ErrSlotNotInGrid возвращается, когда метка времени не является слотом сетки
	ErrSlotNotInGrid = errors.New("domain: time is not a grid slot")

	// ErrSlotOutOfRange возвращается при обращении по индексу вне сетки
	ErrSlotOutOfRange = errors.New("domain: slot index out of range")

	// ErrInvalidAlignment возвращается, когда минуты не попадают на границу слота
	ErrInvalidAlignment = errors.New("domain: minutes not aligned to slot boundary")

	// ErrInvalidGrid возвращается при некорректных границах сетки
	ErrInvalidGrid = errors.New("domain: invalid grid bounds")
)

// TimeGrid is the single source of truth for valid appointment start times:
// an ordered sequence of half-hour marks from salon open through the last
// bookable start. Both the public booking flow and the operator flow share
// one grid so slot math can never disagree between them.
type TimeGrid struct {
	slots       []types.TimeString
	index       map[types.TimeString]int
	publicCount int
}

// NewTimeGrid builds the canonical grid from open through lastStart
// inclusive. publicLastStart bounds the subset shown on the public booking
// form; it only affects PublicDisplay, never capacity math.
func NewTimeGrid(open, lastStart, publicLastStart types.TimeString) (*TimeGrid, error) {
	openMin, err := open.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidGrid, err)
	}
	lastMin, err := lastStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: last start time: %v", ErrInvalidGrid, err)
	}
	publicMin, err := publicLastStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: public last start time: %v", ErrInvalidGrid, err)
	}

	if openMin%SlotMinutes != 0 || lastMin%SlotMinutes != 0 {
		return nil, fmt.Errorf("%w: bounds must fall on %d-minute marks", ErrInvalidGrid, SlotMinutes)
	}
	if lastMin < openMin {
		return nil, fmt.Errorf("%w: last start %s precedes open %s", ErrInvalidGrid, lastStart, open)
	}
	if publicMin < openMin || publicMin > lastMin {
		return nil, fmt.Errorf("%w: public cutoff %s outside grid", ErrInvalidGrid, publicLastStart)
	}

	grid := &TimeGrid{index: make(map[types.TimeString]int)}
	for m := openMin; m <= lastMin; m += SlotMinutes {
		label, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
		}
		grid.index[label] = len(grid.slots)
		grid.slots = append(grid.slots, label)
		if m <= publicMin {
			grid.publicCount++
		}
	}

	return grid, nil
}

// SlotCount returns the number of slots in the grid
func (g *TimeGrid) SlotCount() int {
	return len(g.slots)
}

// LabelAt returns the slot label at the given ordinal position
func (g *TimeGrid) LabelAt(i int) (types.TimeString, error) {
	if i < 0 || i >= len(g.slots) {
		return "", fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	return g.slots[i], nil
}

// IndexOf returns the ordinal position of the label in the grid
func (g *TimeGrid) IndexOf(label types.TimeString) (int, error) {
	i, ok := g.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSlotNotInGrid, label)
	}
	return i, nil
}

// Contains reports whether the label is a member of the grid
func (g *TimeGrid) Contains(label types.TimeString) bool {
	_, ok := g.index[label]
	return ok
}

// ToMinutes converts a grid label to minutes since midnight
func (g *TimeGrid) ToMinutes(label types.TimeString) (int, error) {
	if _, ok := g.index[label]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrSlotNotInGrid, label)
	}
	return label.Minutes()
}

// FromMinutes converts minutes since midnight to the grid label starting
// exactly at that minute; values off a slot boundary are an input error
func (g *TimeGrid) FromMinutes(minutes int) (types.TimeString, error) {
	if minutes%SlotMinutes != 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAlignment, minutes)
	}
	label, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return "", fmt.Errorf("%w: %d", ErrInvalidAlignment, minutes)
	}
	if _, ok := g.index[label]; !ok {
		return "", fmt.Errorf("%w: %s", ErrSlotNotInGrid, label)
	}
	return label, nil
}

// Slots returns the full ordered grid. The returned slice is a copy.
func (g *TimeGrid) Slots() []types.TimeString {
	out := make([]types.TimeString, len(g.slots))
	copy(out, g.slots)
	return out
}

// PublicDisplay returns the leading subset of the grid shown on the public
// booking form. A pure view filter: capacity math always runs on the full grid.
func (g *TimeGrid) PublicDisplay() []types.TimeString {
	out := make([]types.TimeString, g.publicCount)
	copy(out, g.slots[:g.publicCount])
	return out
}
