package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrInvalidStatus возвращается, когда запись не в статусе pending
	ErrInvalidStatus = errors.New("confirm_booking: booking cannot be confirmed in its current status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
