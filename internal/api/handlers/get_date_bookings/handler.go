package get_date_bookings

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

const msgInvalidDate = "invalid date, expected YYYY-MM-DD"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dates/{date}/bookings
// confirmedOnly=true скрывает неподтвержденные заявки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /dates/{date}/bookings - invalid date=%q", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includePending := r.URL.Query().Get("confirmedOnly") != "true"

	result, err := h.service.GetForDate(r.Context(), date, includePending)
	if err != nil {
		h.logger.Error("GET /dates/{date}/bookings - failed: date=%s, error=%v", vars["date"], err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
