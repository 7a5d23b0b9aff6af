package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/velvetnails/VNS-BookingService/internal/api/handlers"
	"github.com/velvetnails/VNS-BookingService/internal/domain"
	getAvailability "github.com/velvetnails/VNS-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidFrom  = "invalid 'from' date, expected YYYY-MM-DD"
	msgInvalidDays  = "invalid 'days' value"
	msgInvalidRange = "requested range is outside the booking window"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	grid    *domain.TimeGrid
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, grid *domain.TimeGrid, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		grid:    grid,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Параметры: from=YYYY-MM-DD, days=N, full=true (полная сетка для
// панели оператора; по умолчанию витринная часть до публичного среза)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &getAvailability.Request{}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /availability - invalid from=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = from
	}

	if raw := query.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			h.logger.Warn("GET /availability - invalid days=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.Days = days
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
		default:
			h.logger.Error("GET /availability - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	publicSlots := len(h.grid.PublicDisplay())
	if query.Get("full") == "true" {
		publicSlots = 0
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, publicSlots))
}
