package blocks

import "errors"

var (
	// ErrSlotTaken возвращается, когда слот уже присутствует в леджере
	// (уникальный констрейнт на (block_date, start_time))
	ErrSlotTaken = errors.New("blocks.repository: slot already reserved")

	// ErrDayBlockNotFound возвращается, когда блокировка дня не найдена
	ErrDayBlockNotFound = errors.New("blocks.repository: day block not found")

	// ErrSlotBlockNotFound возвращается, когда блокировка слота не найдена
	ErrSlotBlockNotFound = errors.New("blocks.repository: slot block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blocks.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blocks.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blocks.repository: failed to scan row")
)
