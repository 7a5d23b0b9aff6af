package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата выходит за скользящее окно
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrDayBlocked возвращается, когда салон закрыт в указанную дату
	ErrDayBlocked = errors.New("create_booking: day is blocked")

	// ErrTooLateToBook возвращается, когда запись на сегодня нарушает минимальный запас времени
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда нужные слоты уже заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrRateLimited возвращается при превышении лимита заявок с одного номера
	ErrRateLimited = errors.New("create_booking: too many booking attempts")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
