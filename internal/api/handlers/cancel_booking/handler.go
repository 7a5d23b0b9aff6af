package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	cancelBooking "github.com/velvetnails/VNS-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidID       = "invalid booking id"
	msgBookingNotFound = "booking not found"
	msgInvalidStatus   = "booking cannot be cancelled in its current status"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.useCase.Execute(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - not found: id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, cancelBooking.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/cancel - invalid status: id=%d", id)
			handlers.RespondConflict(w, msgInvalidStatus)
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)
		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - cancelled: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
