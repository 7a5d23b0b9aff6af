package get_availability

import (
	"github.com/velvetnails/VNS-BookingService/internal/domain"
	getAvailability "github.com/velvetnails/VNS-BookingService/internal/usecase/get_availability"
)

// SlotResponse вердикт по одному слоту
type SlotResponse struct {
	Start     string `json:"start"`
	Display   string `json:"display"` // "2:00 PM"
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// DayResponse снимок одной даты
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots,omitempty"`
	Error string         `json:"error,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	GeneratedAt string        `json:"generatedAt"`
	Days        []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// publicSlots > 0 обрезает каждую дату до витринной части сетки
func FromUseCaseResponse(resp *getAvailability.Response, publicSlots int) *AvailabilityResponse {
	out := &AvailabilityResponse{
		GeneratedAt: resp.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Days:        make([]DayResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		dr := DayResponse{Date: day.Date.Format(domain.DateFormat)}

		if day.Err != "" {
			dr.Error = day.Err
			out.Days = append(out.Days, dr)
			continue
		}

		slots := day.Snapshot.Slots
		if publicSlots > 0 && publicSlots < len(slots) {
			slots = slots[:publicSlots]
		}

		dr.Slots = make([]SlotResponse, 0, len(slots))
		for _, s := range slots {
			dr.Slots = append(dr.Slots, SlotResponse{
				Start:     s.Start.String(),
				Display:   s.Start.Display(),
				Available: s.Available,
				Reason:    s.Reason,
			})
		}

		out.Days = append(out.Days, dr)
	}

	return out
}
