package domain

// Slot math constants. Fixed business policy for the salon: appointments
// start on half-hour marks and every appointment is followed by a cleanup
// buffer folded into its reservation.
const (
	// SlotMinutes шаг сетки слотов
	SlotMinutes = 30

	// BufferMinutes обязательный перерыв после каждой записи
	BufferMinutes = 15
)

// Default policy values, overridable through [salon] configuration.
const (
	DefaultMinNoticeMinutes = 120 // запись на сегодня минимум за 2 часа
	DefaultWindowDays       = 60  // скользящее окно календаря
)

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
	MaxNameLength      = 100
	MaxPhoneLength     = 20
	MaxNotesLength     = 500
	MaxAddons          = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Unavailability reasons reported in availability snapshots.
// The strings are part of the API response contract.
const (
	ReasonDayBlocked    = "day blocked"
	ReasonSlotBlocked   = "slot blocked"
	ReasonAdvanceNotice = "advance notice required"
	ReasonBooked        = "already booked"
)

// ActiveStatuses статусы, при которых бронирование удерживает свои слоты
// Используется при проверке пересечений и построении календаря
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
