package get_availability

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// Request модель запроса календаря доступности
type Request struct {
	// From первая дата диапазона; нулевое значение - сегодня
	From time.Time

	// Days число дат в диапазоне; 0 - все скользящее окно
	Days int
}

// Response модель ответа: по одной записи на каждую дату диапазона
type Response struct {
	GeneratedAt time.Time
	Days        []DayAvailability
}

// DayAvailability снимок доступности одной даты
// Err заполняется, если данные этой даты получить не удалось;
// остальные даты диапазона при этом возвращаются как обычно
type DayAvailability struct {
	Date     time.Time
	Snapshot *domain.AvailabilitySnapshot
	Err      string
}
