package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrInvalidStatus возвращается, когда запись нельзя перенести из текущего статуса
	ErrInvalidStatus = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrInvalidDate возвращается при некорректной новой дате
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда новая дата выходит за скользящее окно
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда новое время не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrDayBlocked возвращается, когда салон закрыт в новую дату
	ErrDayBlocked = errors.New("reschedule_booking: day is blocked")

	// ErrTooLateToBook возвращается, когда перенос на сегодня нарушает минимальный запас времени
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда нужные слоты на новом месте заняты
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
