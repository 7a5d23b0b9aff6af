package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewStart.IsZero() {
		return fmt.Errorf("%w: newStart is required", ErrInvalidInput)
	}
	if err := req.NewStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStart format: %v", ErrInvalidInput, err)
	}

	if req.NewDurationMinutes != nil {
		if *req.NewDurationMinutes < domain.MinDurationMinutes || *req.NewDurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	return nil
}

// validateDate проверяет, что новая дата попадает в скользящее окно записи
func validateDate(bookingDate time.Time, now time.Time, windowDays int) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	if dateOnly.After(today.AddDate(0, 0, windowDays-1)) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateTooFarInFuture, windowDays)
	}

	return nil
}

// validateBookingNotice проверяет запас времени при переносе на сегодня
func validateBookingNotice(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	y1, m1, d1 := bookingDate.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return nil
	}

	minAllowedTime, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}
