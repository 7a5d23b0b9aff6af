package get_date_bookings

import (
	"context"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetForDate(ctx context.Context, date time.Time, includePending bool) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
