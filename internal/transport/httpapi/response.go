package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/transport/dto"
)

// statusFor сопоставляет доменную ошибку HTTP-коду и сообщению для клиента.
func statusFor(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	case domain.IsStoreUnavailable(err):
		return http.StatusServiceUnavailable, "store unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	code, message := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("status", code).Error("request failed")
	}
	h.writeJSON(w, code, dto.Error{Error: message})
}

func (h *handlers) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Error("write response")
	}
}
