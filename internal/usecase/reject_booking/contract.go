package reject_booking

import (
	"context"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	DeleteSlotBlocksByBooking(ctx context.Context, bookingID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки SMS-уведомлений
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// ImagePurger интерфейс удаления референсных изображений из хранилища
type ImagePurger interface {
	DeleteRefs(ctx context.Context, refs []string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
