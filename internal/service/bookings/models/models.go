package models

import (
	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64    `json:"id"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	ServiceID       int64    `json:"serviceId"`
	ServiceName     string   `json:"serviceName"`
	Date            string   `json:"date"`      // "2025-10-15"
	StartTime       string   `json:"startTime"` // "14:00"
	DurationMinutes int      `json:"durationMinutes"`
	TotalPrice      float64  `json:"totalPrice"`
	Addons          []string `json:"addons,omitempty"`
	Status          string   `json:"status"`
	NailArtNotes    *string  `json:"nailArtNotes,omitempty"`
	AdminNotes      *string  `json:"adminNotes,omitempty"`
	ImageRefs       []string `json:"imageRefs,omitempty"`
	ReminderSent    bool     `json:"reminderSent"`
	PreviousDate    *string  `json:"previousDate,omitempty"`
	PreviousStart   *string  `json:"previousStart,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		TotalPrice:      b.TotalPrice,
		Addons:          b.Addons,
		Status:          string(b.Status),
		NailArtNotes:    b.NailArtNotes,
		AdminNotes:      b.AdminNotes,
		ImageRefs:       b.ImageRefs,
		ReminderSent:    b.ReminderSent,
		CreatedAt:       b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if b.PreviousDate != nil {
		prevDate := b.PreviousDate.Format(domain.DateFormat)
		resp.PreviousDate = &prevDate
	}
	if b.PreviousStart != nil {
		prevStart := b.PreviousStart.String()
		resp.PreviousStart = &prevStart
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out, Total: len(out)}
}
