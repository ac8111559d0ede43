package handler

import (
	"net/http"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/middleware"
	"github.com/dukerupert/vendas/internal/telemetry"
)

// ErrorResponse logs err, reports server errors to Sentry and writes the
// {success:false, message} envelope. Internal details never reach the body.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	} else {
		logger.Info("request rejected", attrs...)
	}

	JSON(w, r, status, Envelope{Success: false, Message: domain.ErrorMessage(err)})
}

// ValidationErrorResponse writes a 400 for a ValidationError.
// Other errors fall back to ErrorResponse.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if !domain.IsValidationError(err) {
		ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("validation failed",
		"op", domain.ErrorOp(err),
		"fields", domain.GetValidationFields(err),
	)
	JSON(w, r, http.StatusBadRequest, Envelope{Success: false, Message: domain.ErrorMessage(err)})
}

// BadRequestResponse writes a 400 with message.
func BadRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	ErrorResponse(w, r, domain.Invalid("", message))
}

// UnauthorizedResponse writes the 401 used when no caller identity is present.
func UnauthorizedResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.ErrInvalidUser)
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
