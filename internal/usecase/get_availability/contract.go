package get_availability

import (
	"context"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetDayBlocks(ctx context.Context, from, to time.Time) (map[string]bool, error)
	GetSlotBlocks(ctx context.Context, from, to time.Time) (map[string][]domain.SlotBlock, error)
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
