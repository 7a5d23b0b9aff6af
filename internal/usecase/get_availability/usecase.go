package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// UseCase use case построения календаря доступности на скользящее окно
type UseCase struct {
	bookingRepo      BookingRepository
	blockRepo        BlockRepository
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
	grid *domain.TimeGrid,
	windowDays int,
	minNoticeMinutes int,
	clock Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		blockRepo:        blockRepo,
		grid:             grid,
		windowDays:       windowDays,
		minNoticeMinutes: minNoticeMinutes,
		clock:            clock,
		logger:           logger,
	}
}

// Execute строит снимки доступности для каждой даты диапазона
// Ошибка получения данных одной даты не мешает вернуть остальные
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.clock.Now()
	today := truncateToDay(now)

	// 1. Нормализуем диапазон к скользящему окну
	from := req.From
	if from.IsZero() {
		from = today
	} else {
		from = truncateToDay(from)
	}

	days := req.Days
	if days == 0 {
		days = uc.windowDays
	}

	if err := validateRange(from, days, today, uc.windowDays); err != nil {
		uc.logger.Warn("GetAvailability: range validation failed: %v", err)
		return nil, err
	}

	to := from.AddDate(0, 0, days-1)

	uc.logger.Info("GetAvailability: building calendar %s..%s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 2. Батч-выборка блокировок на весь диапазон
	// Ошибка батча фиксируется на каждой дате, а не роняет весь запрос
	var batchErr error

	dayBlocks, err := uc.blockRepo.GetDayBlocks(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get day blocks: %v", err)
		batchErr = fmt.Errorf("%w: failed to get day blocks: %v", ErrInternal, err)
	}

	slotBlocks, err := uc.blockRepo.GetSlotBlocks(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get slot blocks: %v", err)
		batchErr = fmt.Errorf("%w: failed to get slot blocks: %v", ErrInternal, err)
	}

	// 3. Снимок на каждую дату
	resp := &Response{
		GeneratedAt: now,
		Days:        make([]DayAvailability, 0, days),
	}

	lastAllowed := today.AddDate(0, 0, uc.windowDays-1)

	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		// Диапазон обрезается по границе скользящего окна
		if date.After(lastAllowed) {
			break
		}
		day := DayAvailability{Date: date}

		if batchErr != nil {
			day.Err = batchErr.Error()
			resp.Days = append(resp.Days, day)
			continue
		}

		snapshot, err := uc.buildDaySnapshot(ctx, date, now, dayBlocks, slotBlocks)
		if err != nil {
			uc.logger.Error("GetAvailability: date %s failed: %v", date.Format(domain.DateFormat), err)
			day.Err = err.Error()
		} else {
			day.Snapshot = snapshot
		}

		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

// buildDaySnapshot собирает данные одной даты и строит снимок
func (uc *UseCase) buildDaySnapshot(
	ctx context.Context,
	date time.Time,
	now time.Time,
	dayBlocks map[string]bool,
	slotBlocks map[string][]domain.SlotBlock,
) (*domain.AvailabilitySnapshot, error) {
	key := date.Format(domain.DateFormat)

	input := domain.SnapshotInput{
		Date:             date,
		DayBlocked:       dayBlocks[key],
		Now:              now,
		MinNoticeMinutes: uc.minNoticeMinutes,
	}

	// Заблокированный день не требует ни блокировок слотов, ни бронирований
	if !input.DayBlocked {
		for _, block := range slotBlocks[key] {
			if block.IsManual() {
				input.ManualBlocks = append(input.ManualBlocks, block.Start)
			}
		}

		bookings, err := uc.bookingRepo.GetByDate(ctx, date, true)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		input.Bookings = bookings
	}

	return domain.BuildSnapshot(uc.grid, input)
}

// validateRange проверяет, что запрошенный диапазон лежит в окне бронирования
func validateRange(from time.Time, days int, today time.Time, windowDays int) error {
	if days < 0 || days > windowDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, windowDays)
	}
	if from.Before(today) {
		return fmt.Errorf("%w: range must not start in the past", ErrInvalidInput)
	}
	lastAllowed := today.AddDate(0, 0, windowDays-1)
	if from.After(lastAllowed) {
		return fmt.Errorf("%w: range starts beyond the %d-day window", ErrInvalidInput, windowDays)
	}
	return nil
}

// truncateToDay обнуляет время, сохраняя локацию
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
