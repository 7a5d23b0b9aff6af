package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	blocksRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/blocks"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/smsgateway"
	"github.com/velvetnails/VNS-BookingService/pkg/ptr"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	bookingRepo      BookingRepository
	blockRepo        BlockRepository
	txManager        TransactionManager
	rateLimiter      RateLimiter
	notifier         Notifier
	grid             *domain.TimeGrid
	windowDays       int
	minNoticeMinutes int
	clock            Clock
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// rateLimiter и notifier могут быть nil, тогда соответствующий шаг пропускается
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	rateLimiter RateLimiter,
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
		rateLimiter:      rateLimiter,
		notifier:         notifier,
		grid:             grid,
		windowDays:       windowDays,
		minNoticeMinutes: minNoticeMinutes,
		clock:            clock,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию: проверка доступности и вставка
// слотов в леджер происходят атомарно, гонка двух заявок на один слот
// разрешается уникальным констрейнтом леджера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: phone=%s, service=%d, date=%s, time=%s, duration=%d",
		req.CustomerPhone, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Лимит заявок по номеру телефона и IP клиента
	if uc.rateLimiter != nil {
		keys := []string{"phone:" + req.CustomerPhone}
		if req.ClientIP != "" {
			keys = append(keys, "ip:"+req.ClientIP)
		}
		for _, key := range keys {
			allowed, err := uc.rateLimiter.Allow(ctx, key)
			if err != nil {
				uc.logger.Error("CreateBooking: rate limiter check failed: %v", err)
				return nil, fmt.Errorf("%w: rate limiter check: %v", ErrInternal, err)
			}
			if !allowed {
				uc.logger.Warn("CreateBooking: rate limit exceeded for %s", key)
				return nil, ErrRateLimited
			}
		}
	}

	now := uc.clock.Now()

	// 3. Дата в скользящем окне записи
	if err := validateDate(req.Date, now, uc.windowDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Время начала лежит на сетке слотов
	if !uc.grid.Contains(req.StartTime) {
		uc.logger.Warn("CreateBooking: start time %s is not on the grid", req.StartTime)
		return nil, fmt.Errorf("%w: %s is not a bookable start time", ErrInvalidTimeSlot, req.StartTime)
	}

	// 5. Запас времени при записи на сегодня
	if err := validateBookingNotice(req.Date, req.StartTime, now, uc.minNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
		return nil, err
	}

	// 6. Слоты, которые займет запись (длительность + перерыв на уборку)
	occupied, err := domain.OccupiedSlots(uc.grid, req.StartTime, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to expand occupied slots: %v", err)
		return nil, fmt.Errorf("%w: expand occupied slots: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 7. Проверка доступности и запись выполняются в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. День закрыт оператором целиком
		dayBlocked, err := uc.blockRepo.IsDayBlocked(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check day block: %v", err)
			return fmt.Errorf("%w: check day block: %v", ErrInternal, err)
		}
		if dayBlocked {
			uc.logger.Warn("CreateBooking: day %s is blocked", req.Date.Format(domain.DateFormat))
			return ErrDayBlocked
		}

		// 7.2. Ручные блокировки и активные записи на дату (FOR UPDATE)
		slotBlocks, err := uc.blockRepo.GetSlotBlocksForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot blocks: %v", err)
			return fmt.Errorf("%w: get slot blocks: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetByDate(txCtx, req.Date, true)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
		}

		// 7.3. Снимок доступности даты
		snapshot, err := domain.BuildSnapshot(uc.grid, domain.SnapshotInput{
			Date:             req.Date,
			ManualBlocks:     manualStarts(slotBlocks),
			Bookings:         bookings,
			Now:              now,
			MinNoticeMinutes: uc.minNoticeMinutes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to build snapshot: %v", err)
			return fmt.Errorf("%w: build availability snapshot: %v", ErrInternal, err)
		}

		// 7.4. Все нужные слоты подряд свободны
		fits, err := domain.CanFit(uc.grid, snapshot, req.StartTime, req.DurationMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: capacity check failed: %v", err)
			return fmt.Errorf("%w: capacity check: %v", ErrInternal, err)
		}
		if !fits {
			uc.logger.Warn("CreateBooking: slot %s on %s does not fit %d minutes",
				req.StartTime, req.Date.Format(domain.DateFormat), req.DurationMinutes)
			return ErrSlotNotAvailable
		}

		// 7.5. Создаем запись в статусе pending
		booking := &domain.Booking{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			ServiceID:       req.ServiceID,
			ServiceName:     req.ServiceName,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			TotalPrice:      req.TotalPrice,
			Addons:          req.Addons,
			Status:          domain.StatusPending,
			NailArtNotes:    req.NailArtNotes,
			ImageRefs:       req.ImageRefs,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		// 7.6. Удерживаем слоты в леджере от имени записи
		// Констрейнт (block_date, start_time) ловит гонку, которую
		// снимок не увидел
		if err := uc.blockRepo.InsertSlotBlocks(txCtx, req.Date, occupied, ptr.Ptr(created.ID)); err != nil {
			if errors.Is(err, blocksRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: ledger conflict for %s on %s",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to reserve slots: %v", err)
			return fmt.Errorf("%w: reserve slots: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 8. SMS-уведомление после коммита; ошибка отправки не отменяет запись
	if uc.notifier != nil {
		if err := uc.notifier.Send(ctx, result.CustomerPhone, smsgateway.BookingReceived(result)); err != nil {
			uc.logger.Error("CreateBooking: failed to send sms for booking id=%d: %v", result.ID, err)
		}
	}

	return toResponse(result, occupied), nil
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

// toResponse конвертирует бронирование в модель ответа
func toResponse(b *domain.Booking, occupied []types.TimeString) *Response {
	slots := make([]string, 0, len(occupied))
	for _, s := range occupied {
		slots = append(slots, s.String())
	}

	return &Response{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		Date:            b.Date,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		TotalPrice:      b.TotalPrice,
		Addons:          b.Addons,
		Status:          string(b.Status),
		NailArtNotes:    b.NailArtNotes,
		ImageRefs:       b.ImageRefs,
		OccupiedSlots:   slots,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
