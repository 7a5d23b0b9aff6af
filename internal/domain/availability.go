package domain

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// SlotAvailability is the per-slot verdict within a snapshot
type SlotAvailability struct {
	Start     types.TimeString
	Available bool
	// Reason is empty when the slot is available
	Reason string
}

// AvailabilitySnapshot is the derived, never-persisted availability state of
// one date: one verdict per grid slot, in grid order. Rebuilt on demand from
// DayBlock + SlotBlock + Booking records.
type AvailabilitySnapshot struct {
	Date  time.Time
	Slots []SlotAvailability
}

// IsAvailable returns the verdict for a single slot; unknown labels are
// reported unavailable
func (s *AvailabilitySnapshot) IsAvailable(start types.TimeString) bool {
	for i := range s.Slots {
		if s.Slots[i].Start == start {
			return s.Slots[i].Available
		}
	}
	return false
}

// SnapshotInput собирает все записи, влияющие на доступность одной даты
type SnapshotInput struct {
	Date time.Time

	// DayBlocked флаг блокировки всего дня оператором
	DayBlocked bool

	// ManualBlocks слоты, заблокированные оператором вручную
	// (записи леджера без booking_id)
	ManualBlocks []types.TimeString

	// Bookings активные (pending/confirmed) бронирования на дату;
	// их занятые диапазоны разворачиваются через OccupiedSlots
	Bookings []*Booking

	// Now текущее время салона; используется только когда Date - сегодня
	Now time.Time

	// MinNoticeMinutes минимальное время до начала слота при записи на сегодня
	MinNoticeMinutes int

	// ExcludeBookingID бронирование, чьи занятые слоты считать свободными
	// Используется при reschedule: иначе бронирование нельзя сдвинуть на
	// время, пересекающееся с его собственным буферным хвостом
	ExcludeBookingID int64
}

// BuildSnapshot computes the availability snapshot for one date.
//
// Check order per slot: day block, manual slot block, same-day advance
// notice, booking overlap. The order only decides which reason is reported;
// a slot covered by several conditions is unavailable either way. Absence of
// any records means a fully available date.
func BuildSnapshot(grid *TimeGrid, in SnapshotInput) (*AvailabilitySnapshot, error) {
	snapshot := &AvailabilitySnapshot{
		Date:  in.Date,
		Slots: make([]SlotAvailability, 0, grid.SlotCount()),
	}

	// Блокировка всего дня перекрывает любое другое состояние
	if in.DayBlocked {
		for _, label := range grid.Slots() {
			snapshot.Slots = append(snapshot.Slots, SlotAvailability{
				Start:  label,
				Reason: ReasonDayBlocked,
			})
		}
		return snapshot, nil
	}

	manual := make(map[types.TimeString]bool, len(in.ManualBlocks))
	for _, b := range in.ManualBlocks {
		manual[b] = true
	}

	booked, err := expandBookings(grid, in.Bookings, in.ExcludeBookingID)
	if err != nil {
		return nil, err
	}

	var minAllowed types.TimeString
	sameDay := isSameDay(in.Date, in.Now)
	if sameDay {
		minAllowed, err = types.NewTimeString(in.Now).AddMinutes(in.MinNoticeMinutes)
		if err != nil {
			// now + notice перешагнул полночь: на сегодня все слоты закрыты
			for _, label := range grid.Slots() {
				snapshot.Slots = append(snapshot.Slots, SlotAvailability{
					Start:  label,
					Reason: ReasonAdvanceNotice,
				})
			}
			return snapshot, nil
		}
	}

	for _, label := range grid.Slots() {
		verdict := SlotAvailability{Start: label}

		switch {
		case manual[label]:
			verdict.Reason = ReasonSlotBlocked
		case sameDay && label.IsBefore(minAllowed):
			verdict.Reason = ReasonAdvanceNotice
		case booked[label]:
			verdict.Reason = ReasonBooked
		default:
			verdict.Available = true
		}

		snapshot.Slots = append(snapshot.Slots, verdict)
	}

	return snapshot, nil
}

// expandBookings разворачивает занятые диапазоны активных бронирований
// в множество слотов
func expandBookings(grid *TimeGrid, bookings []*Booking, excludeID int64) (map[types.TimeString]bool, error) {
	occupied := make(map[types.TimeString]bool)

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}

		slots, err := OccupiedSlots(grid, b.StartTime, b.DurationMinutes)
		if err != nil {
			// Бронирование с началом вне сетки не должно ронять весь день;
			// его слоты просто не учитываются
			continue
		}
		for _, s := range slots {
			occupied[s] = true
		}
	}

	return occupied, nil
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
