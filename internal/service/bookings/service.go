package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	bookingRepo "github.com/velvetnails/VNS-BookingService/internal/infra/storage/booking"
	"github.com/velvetnails/VNS-BookingService/internal/service/bookings/models"
)

// Service сервис чтения записей для панели оператора
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetForDate получает записи на дату, отсортированные по времени начала
// includePending=false ограничивает выдачу подтвержденными записями
func (s *Service) GetForDate(ctx context.Context, date time.Time, includePending bool) (*models.BookingListResponse, error) {
	s.logger.Info("GetForDate: fetching bookings for %s, includePending=%t",
		date.Format("2006-01-02"), includePending)

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDate(ctx, date, true)
	if err != nil {
		s.logger.Error("GetForDate: repository error for %s: %v", date.Format("2006-01-02"), err)
		return nil, fmt.Errorf("%w: GetForDate - repository error: %v", ErrInternal, err)
	}

	if !includePending {
		filtered := bookings[:0]
		for _, b := range bookings {
			if b.Status == domain.StatusConfirmed {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	s.logger.Info("GetForDate: fetched %d bookings for %s", len(bookings), date.Format("2006-01-02"))
	return models.FromDomainBookingList(bookings), nil
}
