package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
)

// ErrorCode identifies the error kind for API clients
type ErrorCode string

const (
	CodeDuplicate       ErrorCode = "DUPLICATE"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	CodeInvalidSettings ErrorCode = "INVALID_SETTINGS"
	CodeInvalidURL      ErrorCode = "INVALID_URL"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeRateLimited     ErrorCode = "RATE_LIMITED"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeUpstream        ErrorCode = "UPSTREAM_ERROR"
)

// ErrorResponse is the JSON body of every error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one error
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status, code := mapError(err)

	message := err.Error()
	if code == CodeInternal {
		logging.Logger.Error("unexpected error", "error", err)
		message = "internal server error"
	} else {
		logging.Logger.Warn("request failed", "error", err, "code", code)
	}

	writeErrorResponse(w, status, code, message)
}

func writeErrorResponse(w http.ResponseWriter, status int, code ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func mapError(err error) (int, ErrorCode) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, CodeInvalidURL
	case errors.Is(err, domain.ErrInvalidSettings):
		return http.StatusBadRequest, CodeInvalidSettings
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusConflict, CodeDuplicate
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, CodeRateLimited
	case errors.Is(err, domain.ErrTransient), errors.Is(err, domain.ErrMalformed):
		return http.StatusBadGateway, CodeUpstream
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
