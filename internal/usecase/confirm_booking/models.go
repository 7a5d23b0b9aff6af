package confirm_booking

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// Request модель запроса на подтверждение записи
type Request struct {
	BookingID int64 // ID записи

	// FinalPrice итоговая цена, выставленная оператором после просмотра
	// пожеланий и референсов; nil - оставить предварительную цену
	FinalPrice *float64
}

// Response модель ответа с подтвержденной записью
type Response struct {
	ID              int64
	CustomerName    string
	CustomerPhone   string
	ServiceName     string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	TotalPrice      float64
	Status          string
}
