package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrInvalidStatus возвращается, когда запись нельзя отменить из текущего статуса
	ErrInvalidStatus = errors.New("cancel_booking: booking cannot be cancelled in its current status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
