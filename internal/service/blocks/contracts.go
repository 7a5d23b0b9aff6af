package blocks

import (
	"context"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	IsDayBlocked(ctx context.Context, date time.Time) (bool, error)
	InsertDayBlock(ctx context.Context, date time.Time) error
	DeleteDayBlock(ctx context.Context, date time.Time) error
	GetSlotBlocksForDate(ctx context.Context, date time.Time) ([]domain.SlotBlock, error)
	InsertSlotBlocks(ctx context.Context, date time.Time, starts []types.TimeString, bookingID *int64) error
	DeleteManualSlotBlock(ctx context.Context, date time.Time, start types.TimeString) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
