package create_booking

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	createBooking "github.com/velvetnails/VNS-BookingService/internal/usecase/create_booking"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	ServiceID       int64    `json:"serviceId"`
	ServiceName     string   `json:"serviceName"`
	Date            string   `json:"date"`      // "2025-10-15"
	StartTime       string   `json:"startTime"` // "14:00" или "2:00 PM"
	DurationMinutes int      `json:"durationMinutes"`
	TotalPrice      float64  `json:"totalPrice"`
	Addons          []string `json:"addons,omitempty"`
	NailArtNotes    *string  `json:"nailArtNotes,omitempty"`
	ImageRefs       []string `json:"imageRefs,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64    `json:"id"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	ServiceID       int64    `json:"serviceId"`
	ServiceName     string   `json:"serviceName"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	TotalPrice      float64  `json:"totalPrice"`
	Addons          []string `json:"addons,omitempty"`
	Status          string   `json:"status"`
	NailArtNotes    *string  `json:"nailArtNotes,omitempty"`
	ImageRefs       []string `json:"imageRefs,omitempty"`
	OccupiedSlots   []string `json:"occupiedSlots"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		ServiceID:       r.ServiceID,
		ServiceName:     r.ServiceName,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		TotalPrice:      r.TotalPrice,
		Addons:          r.Addons,
		NailArtNotes:    r.NailArtNotes,
		ImageRefs:       r.ImageRefs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		Addons:          resp.Addons,
		Status:          resp.Status,
		NailArtNotes:    resp.NailArtNotes,
		ImageRefs:       resp.ImageRefs,
		OccupiedSlots:   resp.OccupiedSlots,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
