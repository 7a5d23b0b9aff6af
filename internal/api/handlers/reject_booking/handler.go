package reject_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	rejectBooking "github.com/velvetnails/VNS-BookingService/internal/usecase/reject_booking"
)

const (
	msgInvalidID       = "invalid booking id"
	msgBookingNotFound = "booking not found"
	msgInvalidStatus   = "only pending bookings can be rejected"
)

type Handler struct {
	useCase RejectBookingUseCase
	logger  Logger
}

func NewHandler(useCase RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.useCase.Execute(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reject - not found: id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, rejectBooking.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/reject - invalid status: id=%d", id)
			handlers.RespondConflict(w, msgInvalidStatus)
		case errors.Is(err, rejectBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)
		default:
			h.logger.Error("PATCH /bookings/{id}/reject - failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reject - rejected: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
