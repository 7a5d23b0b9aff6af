package create_booking

import (
	"context"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	IsDayBlocked(ctx context.Context, date time.Time) (bool, error)
	GetSlotBlocksForDate(ctx context.Context, date time.Time) ([]domain.SlotBlock, error)
	InsertSlotBlocks(ctx context.Context, date time.Time, starts []types.TimeString, bookingID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// RateLimiter интерфейс лимитера заявок (скользящее окно на Redis)
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Notifier интерфейс отправки SMS-уведомлений
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// Clock интерфейс для получения текущего времени салона (для тестирования)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
