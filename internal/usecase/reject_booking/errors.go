package reject_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("reject_booking: booking not found")

	// ErrInvalidStatus возвращается, когда запись не в статусе pending
	ErrInvalidStatus = errors.New("reject_booking: booking cannot be rejected in its current status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_booking: internal error")
)
