// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler writes standardized error responses for HTTP handlers.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorResponse is the JSON body sent to the browser on failure.
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// HandleRequestError normalizes err, logs it, and writes the HTTP response.
func (h *ErrorHandler) HandleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(r, stdErr, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:     string(stdErr.Code),
		Message:   stdErr.Message,
		Retryable: stdErr.Retryable,
		Metadata:  stdErr.Metadata,
	})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Something went wrong, please try again",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an internal error code to the response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMissingRequiredField,
		ErrCodePriceTooLow,
		ErrCodeNoImages,
		ErrCodeUnknownCategory:
		return http.StatusUnprocessableEntity

	case ErrCodeImageTooLarge,
		ErrCodePayloadTooLarge,
		ErrCodeTotalSizeTooLarge:
		return http.StatusRequestEntityTooLarge

	case ErrCodeUnsupportedImageType:
		return http.StatusUnsupportedMediaType

	case ErrCodeTooManyImages,
		ErrCodeTooManyFiles,
		ErrCodeInvalidMobileNumber,
		ErrCodeInvalidOTP,
		ErrCodeOTPVerifyFailed:
		return http.StatusBadRequest

	case ErrCodeSessionInvalid:
		return http.StatusUnauthorized

	case ErrCodeResourceNotFound:
		return http.StatusNotFound

	case ErrCodeSubmitInFlight:
		return http.StatusConflict

	case ErrCodeRateLimited:
		return http.StatusTooManyRequests

	case ErrCodeUpstreamTimeout:
		return http.StatusGatewayTimeout

	case ErrCodeUpstreamUnavailable,
		ErrCodeBadUpstreamResponse,
		ErrCodeOTPSendFailed,
		ErrCodeUploadFailed:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int) {
	h.logger.Error("Request failed", map[string]interface{}{
		"method":        r.Method,
		"path":          r.URL.Path,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
