package reminder

import (
	"context"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// Notifier интерфейс отправки SMS-уведомлений
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// Clock интерфейс для получения текущего времени салона
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
