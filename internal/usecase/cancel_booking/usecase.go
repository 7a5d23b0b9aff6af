package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	bookingRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/booking"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/smsgateway"
)

// UseCase use case для отмены записи
type UseCase struct {
	bookingRepo BookingRepository
	blockRepo   BlockRepository
	txManager   TransactionManager
	notifier    Notifier
	imagePurger ImagePurger
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	notifier Notifier,
	imagePurger ImagePurger,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		txManager:   txManager,
		notifier:    notifier,
		imagePurger: imagePurger,
		logger:      logger,
	}
}

// Execute выполняет use case отмены записи
// Отменить можно запись в статусе pending или confirmed. Запись удаляется,
// освобождаются ровно те слоты леджера, которые она удерживала; ручные
// блокировки оператора и чужие записи не затрагиваются
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) error {
	uc.logger.Info("CancelBooking: booking id=%d", bookingID)

	if bookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d has status %s", bookingID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, booking.Status)
		}

		if err := uc.blockRepo.DeleteSlotBlocksByBooking(txCtx, bookingID); err != nil {
			uc.logger.Error("CancelBooking: failed to release slots for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: release slots: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Delete(txCtx, bookingID); err != nil {
			uc.logger.Error("CancelBooking: failed to delete booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: delete booking: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", bookingID)

	// Уборка после коммита; ошибки не отменяют отмену
	if uc.imagePurger != nil && len(cancelled.ImageRefs) > 0 {
		if err := uc.imagePurger.DeleteRefs(ctx, cancelled.ImageRefs); err != nil {
			uc.logger.Error("CancelBooking: failed to purge images for booking id=%d: %v", bookingID, err)
		}
	}

	if uc.notifier != nil {
		if err := uc.notifier.Send(ctx, cancelled.CustomerPhone, smsgateway.BookingCancelled(cancelled)); err != nil {
			uc.logger.Error("CancelBooking: failed to send sms for booking id=%d: %v", bookingID, err)
		}
	}

	return nil
}
