package reschedule_booking

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	BookingID int64            // ID записи
	NewDate   time.Time        // Новая дата
	NewStart  types.TimeString // Новое время начала

	// NewDurationMinutes новая длительность; nil - оставить прежнюю
	NewDurationMinutes *int
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64
	CustomerName    string
	CustomerPhone   string
	ServiceName     string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string // pending: перенос требует повторного подтверждения

	PreviousDate  time.Time
	PreviousStart types.TimeString
	OccupiedSlots []string
}
