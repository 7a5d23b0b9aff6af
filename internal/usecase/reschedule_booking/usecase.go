package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	blocksRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/blocks"
	bookingRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/booking"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/smsgateway"
	"github.com/velvetnails/VNS-BookingService/pkg/ptr"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// UseCase use case для переноса записи на новое место в календаре
type UseCase struct {
	bookingRepo      BookingRepository
	blockRepo        BlockRepository
	txManager        TransactionManager
	notifier         Notifier
	grid             *domain.TimeGrid
	windowDays       int
	minNoticeMinutes int
	clock            Clock
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	notifier Notifier,
	grid *domain.TimeGrid,
	windowDays int,
	minNoticeMinutes int,
	clock Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		blockRepo:        blockRepo,
		txManager:        txManager,
		notifier:         notifier,
		grid:             grid,
		windowDays:       windowDays,
		minNoticeMinutes: minNoticeMinutes,
		clock:            clock,
		logger:           logger,
	}
}

// Execute выполняет use case переноса записи
// Доступность нового места проверяется с исключением собственных слотов
// записи: иначе запись нельзя было бы сдвинуть на полчаса вперед через
// ее же буферный хвост. Перенос сбрасывает статус в pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking id=%d to date=%s, time=%s",
		req.BookingID, req.NewDate.Format(domain.DateFormat), req.NewStart)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.clock.Now()

	// 2. Новая дата в скользящем окне
	if err := validateDate(req.NewDate, now, uc.windowDays); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Новое время на сетке слотов
	if !uc.grid.Contains(req.NewStart) {
		uc.logger.Warn("RescheduleBooking: start time %s is not on the grid", req.NewStart)
		return nil, fmt.Errorf("%w: %s is not a bookable start time", ErrInvalidTimeSlot, req.NewStart)
	}

	// 4. Запас времени при переносе на сегодня
	if err := validateBookingNotice(req.NewDate, req.NewStart, now, uc.minNoticeMinutes); err != nil {
		uc.logger.Warn("RescheduleBooking: notice validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		occupied []types.TimeString
	)

	// 5. Перенос выполняется в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Запись существует и переносима (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidStatus, booking.Status)
		}

		duration := booking.DurationMinutes
		if req.NewDurationMinutes != nil {
			duration = *req.NewDurationMinutes
		}

		occupied, err = domain.OccupiedSlots(uc.grid, req.NewStart, duration)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to expand occupied slots: %v", err)
			return fmt.Errorf("%w: expand occupied slots: %v", ErrInternal, err)
		}

		// 5.2. Новая дата не закрыта оператором
		dayBlocked, err := uc.blockRepo.IsDayBlocked(txCtx, req.NewDate)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to check day block: %v", err)
			return fmt.Errorf("%w: check day block: %v", ErrInternal, err)
		}
		if dayBlocked {
			uc.logger.Warn("RescheduleBooking: day %s is blocked", req.NewDate.Format(domain.DateFormat))
			return ErrDayBlocked
		}

		// 5.3. Снимок новой даты без учета собственных слотов записи
		slotBlocks, err := uc.blockRepo.GetSlotBlocksForDate(txCtx, req.NewDate)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get slot blocks: %v", err)
			return fmt.Errorf("%w: get slot blocks: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetByDate(txCtx, req.NewDate, true)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
		}

		snapshot, err := domain.BuildSnapshot(uc.grid, domain.SnapshotInput{
			Date:             req.NewDate,
			ManualBlocks:     manualStarts(slotBlocks),
			Bookings:         bookings,
			Now:              now,
			MinNoticeMinutes: uc.minNoticeMinutes,
			ExcludeBookingID: booking.ID,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to build snapshot: %v", err)
			return fmt.Errorf("%w: build availability snapshot: %v", ErrInternal, err)
		}

		fits, err := domain.CanFit(uc.grid, snapshot, req.NewStart, duration)
		if err != nil {
			uc.logger.Error("RescheduleBooking: capacity check failed: %v", err)
			return fmt.Errorf("%w: capacity check: %v", ErrInternal, err)
		}
		if !fits {
			uc.logger.Warn("RescheduleBooking: slot %s on %s does not fit %d minutes",
				req.NewStart, req.NewDate.Format(domain.DateFormat), duration)
			return ErrSlotNotAvailable
		}

		// 5.4. Переставляем слоты леджера: сначала освобождаем свои,
		// затем удерживаем новые; в одной транзакции это атомарно
		if err := uc.blockRepo.DeleteSlotBlocksByBooking(txCtx, booking.ID); err != nil {
			uc.logger.Error("RescheduleBooking: failed to release slots for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: release slots: %v", ErrInternal, err)
		}

		if err := uc.blockRepo.InsertSlotBlocks(txCtx, req.NewDate, occupied, ptr.Ptr(booking.ID)); err != nil {
			if errors.Is(err, blocksRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleBooking: ledger conflict for %s on %s",
					req.NewStart, req.NewDate.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to reserve slots: %v", err)
			return fmt.Errorf("%w: reserve slots: %v", ErrInternal, err)
		}

		// 5.5. Переносим запись; статус сбрасывается в pending, прежние
		// дата и время сохраняются для аудита
		prevDate := booking.Date
		prevStart := booking.StartTime

		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, req.NewDate, req.NewStart, duration, prevDate, prevStart); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: update booking: %v", ErrInternal, err)
		}

		booking.Date = req.NewDate
		booking.StartTime = req.NewStart
		booking.DurationMinutes = duration
		booking.Status = domain.StatusPending
		booking.PreviousDate = &prevDate
		booking.PreviousStart = &prevStart
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d", result.ID)

	// 6. SMS-уведомление после коммита; ошибка отправки не отменяет перенос
	if uc.notifier != nil {
		if err := uc.notifier.Send(ctx, result.CustomerPhone, smsgateway.BookingRescheduled(result)); err != nil {
			uc.logger.Error("RescheduleBooking: failed to send sms for booking id=%d: %v", result.ID, err)
		}
	}

	slots := make([]string, 0, len(occupied))
	for _, s := range occupied {
		slots = append(slots, s.String())
	}

	return &Response{
		ID:              result.ID,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		ServiceName:     result.ServiceName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PreviousDate:    *result.PreviousDate,
		PreviousStart:   *result.PreviousStart,
		OccupiedSlots:   slots,
	}, nil
}

// manualStarts отбирает из леджера ручные блокировки оператора
func manualStarts(blocks []domain.SlotBlock) []types.TimeString {
	starts := make([]types.TimeString, 0, len(blocks))
	for _, b := range blocks {
		if b.IsManual() {
			starts = append(starts, b.Start)
		}
	}
	return starts
}
