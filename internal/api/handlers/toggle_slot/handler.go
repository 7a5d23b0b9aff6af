package toggle_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/internal/service/blocks"
	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

const (
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid start time, expected HH:MM"
	msgSlotNotOnGrid      = "that start time is not on the booking grid"
	msgSlotHeldByBooking  = "that slot is held by a booking, cancel or reschedule it instead"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/dates/{date}/slots/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["date"]
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("POST /dates/{date}/slots/toggle - invalid date=%q", raw)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dates/{date}/slots/toggle - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := types.NewTimeStringFromString(req.Start)
	if err != nil {
		h.logger.Warn("POST /dates/{date}/slots/toggle - invalid start=%q: %v", req.Start, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	blocked, err := h.service.ToggleSlot(r.Context(), date, start)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrSlotHeldByBooking):
			h.logger.Warn("POST /dates/{date}/slots/toggle - slot held by booking: %s %s", raw, start)
			handlers.RespondConflict(w, msgSlotHeldByBooking)
		case errors.Is(err, blocks.ErrSlotNotOnGrid):
			handlers.RespondBadRequest(w, msgSlotNotOnGrid)
		case errors.Is(err, blocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		default:
			h.logger.Error("POST /dates/{date}/slots/toggle - failed: %s %s, error=%v", raw, start, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /dates/{date}/slots/toggle - %s %s -> blocked=%t", raw, start, blocked)
	handlers.RespondJSON(w, http.StatusOK, ToggleSlotResponse{
		Date:    date.Format(domain.DateFormat),
		Start:   start.String(),
		Blocked: blocked,
	})
}
