package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	bookingRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/booking"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/smsgateway"
)

// UseCase use case для подтверждения записи оператором
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения записи
// Подтвердить можно только запись в статусе pending; слоты в леджере
// уже удерживаются с момента создания, леджер не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking id=%d", req.BookingID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.FinalPrice != nil && *req.FinalPrice < 0 {
		return nil, fmt.Errorf("%w: finalPrice must not be negative", ErrInvalidInput)
	}

	var result *domain.Booking

	// 2. Смена статуса в транзакции (GetByID берет FOR UPDATE)
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeConfirmed() {
			uc.logger.Warn("ConfirmBooking: booking id=%d has status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, booking.Status)
		}

		finalPrice := booking.TotalPrice
		if req.FinalPrice != nil {
			finalPrice = *req.FinalPrice
		}

		if err := uc.bookingRepo.Confirm(txCtx, req.BookingID, finalPrice); err != nil {
			uc.logger.Error("ConfirmBooking: failed to confirm booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: confirm booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.TotalPrice = finalPrice
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: successfully confirmed booking id=%d", result.ID)

	// 3. SMS-уведомление после коммита; ошибка отправки не отменяет подтверждение
	if uc.notifier != nil {
		if err := uc.notifier.Send(ctx, result.CustomerPhone, smsgateway.BookingConfirmed(result)); err != nil {
			uc.logger.Error("ConfirmBooking: failed to send sms for booking id=%d: %v", result.ID, err)
		}
	}

	return &Response{
		ID:              result.ID,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		ServiceName:     result.ServiceName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		TotalPrice:      result.TotalPrice,
		Status:          string(result.Status),
	}, nil
}
