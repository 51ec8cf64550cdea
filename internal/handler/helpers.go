package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; a 100-transfer batch fits comfortably.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON decodes the request body into v. Failures are reported as
// validation errors so they map to 400.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &domain.ErrValidation{Field: "body", Message: "invalid request body"}
	}
	return nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, &domain.ErrValidation{Field: key, Message: key + " must be an integer"}
	}
	return &i, nil
}

// queryString reads an optional string query parameter.
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// handleServiceError maps service and upstream errors to HTTP responses.
// Northwind's own errors are relayed with their status and structured body.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var apiErr *domain.APIError
	var validation *domain.ErrValidation
	var submission *domain.ErrSubmission

	switch {
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &submission):
		logger.Warn("transfer submission failed", zap.String("error", submission.Message))
		writeError(w, http.StatusInternalServerError, submission.Message)
	case errors.As(err, &apiErr):
		logger.Warn("northwind error",
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Body.Error.Code),
			zap.String("message", apiErr.Error()),
		)
		writeJSON(w, apiErr.Status, apiErr.Body)
	case resilience.IsBreakerRejection(err):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "northwind unavailable: "+err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("upstream timeout", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	default:
		logger.Error("upstream request failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
