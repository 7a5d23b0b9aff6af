package reschedule_booking

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	rescheduleBooking "github.com/velvetnails/VNS-BookingService/internal/usecase/reschedule_booking"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate            string `json:"newDate"`   // "2025-10-15"
	NewStart           string `json:"newStart"`  // "14:00" или "2:00 PM"
	NewDurationMinutes *int   `json:"newDurationMinutes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64    `json:"id"`
	CustomerName    string   `json:"customerName"`
	ServiceName     string   `json:"serviceName"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	PreviousDate    string   `json:"previousDate"`
	PreviousStart   string   `json:"previousStart"`
	OccupiedSlots   []string `json:"occupiedSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStart, err := types.NewTimeStringFromString(r.NewStart)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:          bookingID,
		NewDate:            newDate,
		NewStart:           newStart,
		NewDurationMinutes: r.NewDurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PreviousDate:    resp.PreviousDate.Format(domain.DateFormat),
		PreviousStart:   resp.PreviousStart.String(),
		OccupiedSlots:   resp.OccupiedSlots,
	}
}
