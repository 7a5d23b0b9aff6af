package blocks

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blocks service: invalid input data")

	// ErrSlotHeldByBooking возвращается при попытке снять блокировку со слота,
	// который удерживается записью, а не оператором
	ErrSlotHeldByBooking = errors.New("blocks service: slot is held by a booking")

	// ErrSlotNotOnGrid возвращается, когда время слота не лежит на сетке
	ErrSlotNotOnGrid = errors.New("blocks service: slot is not on the grid")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blocks service: internal error")
)
