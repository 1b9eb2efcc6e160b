package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"brl-rate-service/internal/domain/model"
	"brl-rate-service/internal/domain/ports"
	"brl-rate-service/internal/metrics"
	"brl-rate-service/internal/service"
	"brl-rate-service/pkg/logger"
	"brl-rate-service/pkg/utils"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	exchange  ports.ExchangeService
	directory ports.DirectoryService
	log       *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewHandler(exchange ports.ExchangeService, directory ports.DirectoryService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		exchange:  exchange,
		directory: directory,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}
}

// dateParam returns the date query parameter, defaulting to today.
func (h *Handler) dateParam(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return utils.Today(h.now())
}

func (h *Handler) ListCurrenciesHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.CurrencyRequestsTotal.Inc()

	currencies, err := h.directory.GetOrFetch(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, currencies)
}

func (h *Handler) GetRateHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.RateRequestsTotal.Inc()

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: currency")
		return
	}

	record, err := h.exchange.GetRate(r.Context(), currency, h.dateParam(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, record)
}

func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ConversionRequestsTotal.Inc()

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	amountStr := r.URL.Query().Get("amount")

	if from == "" || to == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameters: from and to")
		return
	}

	amount := 1.0
	if amountStr != "" {
		var err error
		amount, err = strconv.ParseFloat(amountStr, 64)
		if err != nil {
			h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
			return
		}
	}

	request := model.ConversionRequest{
		From:   from,
		To:     to,
		Amount: amount,
		Date:   h.dateParam(r),
	}

	result, err := h.exchange.Convert(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, result)
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	var rateErr *model.ExchangeRateError

	switch {
	case errors.Is(err, service.ErrInvalidCurrency),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		errorMessage = err.Error()
	case errors.As(err, &rateErr):
		statusCode = http.StatusBadGateway
		if rateErr.StatusCode == http.StatusNotFound {
			statusCode = http.StatusNotFound
		}
		errorMessage = rateErr.Message
	case errors.Is(err, model.ErrInvalidData):
		statusCode = http.StatusUnprocessableEntity
		errorMessage = "no quotes available for the requested date"
	case errors.Is(err, model.ErrNetwork):
		statusCode = http.StatusBadGateway
		errorMessage = "upstream rate service unavailable"
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
