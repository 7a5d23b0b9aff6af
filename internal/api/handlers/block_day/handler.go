package block_day

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

const msgInvalidDate = "invalid date, expected YYYY-MM-DD"

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

// HandleBlock PUT /api/v1/dates/{date}/block
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	if err := h.service.BlockDay(r.Context(), date); err != nil {
		h.logger.Error("PUT /dates/{date}/block - failed: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /dates/{date}/block - blocked: date=%s", date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleUnblock DELETE /api/v1/dates/{date}/block
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	if err := h.service.UnblockDay(r.Context(), date); err != nil {
		h.logger.Error("DELETE /dates/{date}/block - failed: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /dates/{date}/block - unblocked: date=%s", date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := mux.Vars(r)["date"]
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("dates/{date}/block - invalid date=%q", raw)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return time.Time{}, false
	}
	return date, true
}
