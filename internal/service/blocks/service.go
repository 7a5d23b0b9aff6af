package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	blocksRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/blocks"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// Service сервис блокировок календаря для панели оператора
type Service struct {
	blockRepo BlockRepository
	txManager TransactionManager
	grid      *domain.TimeGrid
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockRepository, txManager TransactionManager, grid *domain.TimeGrid, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		txManager: txManager,
		grid:      grid,
		logger:    logger,
	}
}

// BlockDay закрывает дату целиком; повторная блокировка не ошибка
func (s *Service) BlockDay(ctx context.Context, date time.Time) error {
	s.logger.Info("BlockDay: blocking %s", date.Format(domain.DateFormat))

	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.blockRepo.InsertDayBlock(ctx, date); err != nil {
		s.logger.Error("BlockDay: failed to block %s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: insert day block: %v", ErrInternal, err)
	}

	return nil
}

// UnblockDay снимает блокировку даты; отсутствие блокировки не ошибка
func (s *Service) UnblockDay(ctx context.Context, date time.Time) error {
	s.logger.Info("UnblockDay: unblocking %s", date.Format(domain.DateFormat))

	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.blockRepo.DeleteDayBlock(ctx, date); err != nil {
		if errors.Is(err, blocksRepo.ErrDayBlockNotFound) {
			return nil
		}
		s.logger.Error("UnblockDay: failed to unblock %s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: delete day block: %v", ErrInternal, err)
	}

	return nil
}

// ToggleSlot переключает ручную блокировку одного слота
// Возвращает новое состояние: true, если слот теперь заблокирован.
// Слоты, удерживаемые записями, переключать нельзя
func (s *Service) ToggleSlot(ctx context.Context, date time.Time, start types.TimeString) (bool, error) {
	s.logger.Info("ToggleSlot: %s %s", date.Format(domain.DateFormat), start)

	if date.IsZero() {
		return false, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !s.grid.Contains(start) {
		return false, fmt.Errorf("%w: %s", ErrSlotNotOnGrid, start)
	}

	var blocked bool

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.blockRepo.GetSlotBlocksForDate(txCtx, date)
		if err != nil {
			s.logger.Error("ToggleSlot: failed to get slot blocks: %v", err)
			return fmt.Errorf("%w: get slot blocks: %v", ErrInternal, err)
		}

		for _, block := range existing {
			if block.Start != start {
				continue
			}
			if !block.IsManual() {
				s.logger.Warn("ToggleSlot: slot %s on %s is held by booking id=%d",
					start, date.Format(domain.DateFormat), *block.BookingID)
				return ErrSlotHeldByBooking
			}

			if err := s.blockRepo.DeleteManualSlotBlock(txCtx, date, start); err != nil {
				s.logger.Error("ToggleSlot: failed to delete block: %v", err)
				return fmt.Errorf("%w: delete slot block: %v", ErrInternal, err)
			}
			blocked = false
			return nil
		}

		if err := s.blockRepo.InsertSlotBlocks(txCtx, date, []types.TimeString{start}, nil); err != nil {
			s.logger.Error("ToggleSlot: failed to insert block: %v", err)
			return fmt.Errorf("%w: insert slot block: %v", ErrInternal, err)
		}
		blocked = true
		return nil
	})

	if err != nil {
		return false, err
	}

	s.logger.Info("ToggleSlot: %s %s -> blocked=%t", date.Format(domain.DateFormat), start, blocked)
	return blocked, nil
}
