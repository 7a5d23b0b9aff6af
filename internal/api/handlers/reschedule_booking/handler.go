package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	rescheduleBooking "github.com/velvetnails/VNS-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidID          = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateFormat  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgBookingNotFound    = "booking not found"
	msgInvalidStatus      = "booking cannot be rescheduled in its current status"
	msgSlotNotAvailable   = "that time is no longer available, please pick another slot"
	msgDayBlocked         = "the salon is closed on that date"
	msgInvalidDate        = "bookings cannot be moved to past dates"
	msgDateTooFar         = "that date is not open for booking yet"
	msgInvalidTimeSlot    = "that start time is not bookable"
	msgTooLateToBook      = "same-day appointments need more advance notice"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - not found: id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, rescheduleBooking.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - invalid status: id=%d", id)
			handlers.RespondConflict(w, msgInvalidStatus)
		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - slot not available: id=%d", id)
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, rescheduleBooking.ErrDayBlocked):
			handlers.RespondConflict(w, msgDayBlocked)
		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - rescheduled: id=%d to %s %s",
		id, req.NewDate, req.NewStart)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
