// Package errors provides standardized error handling for the listing front desk.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Form validation errors
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodePriceTooLow          ErrorCode = "PRICE_TOO_LOW"
	ErrCodeNoImages             ErrorCode = "NO_IMAGES"
	ErrCodeUnknownCategory      ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeSerializationFailed  ErrorCode = "SERIALIZATION_FAILED"
	ErrCodeSubmitInFlight       ErrorCode = "SUBMIT_IN_FLIGHT"

	// Image upload errors
	ErrCodeImageTooLarge        ErrorCode = "IMAGE_TOO_LARGE"
	ErrCodeUnsupportedImageType ErrorCode = "UNSUPPORTED_IMAGE_TYPE"
	ErrCodeTooManyImages        ErrorCode = "TOO_MANY_IMAGES"
	ErrCodeUploadFailed         ErrorCode = "UPLOAD_FAILED"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"

	// Upstream payload limits (decoded from structured upstream responses)
	ErrCodePayloadTooLarge   ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeTooManyFiles      ErrorCode = "TOO_MANY_FILES"
	ErrCodeTotalSizeTooLarge ErrorCode = "TOTAL_SIZE_TOO_LARGE"

	// Auth / session errors
	ErrCodeInvalidMobileNumber ErrorCode = "INVALID_MOBILE_NUMBER"
	ErrCodeInvalidOTP          ErrorCode = "INVALID_OTP"
	ErrCodeOTPSendFailed       ErrorCode = "OTP_SEND_FAILED"
	ErrCodeOTPVerifyFailed     ErrorCode = "OTP_VERIFY_FAILED"
	ErrCodeSessionInvalid      ErrorCode = "SESSION_INVALID"

	// Transport errors
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeBadUpstreamResponse ErrorCode = "BAD_UPSTREAM_RESPONSE"
	ErrCodeResourceNotFound    ErrorCode = "RESOURCE_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMissingFieldError creates a non-retryable validation error for one field.
func NewMissingFieldError(field, label string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   fmt.Sprintf("Please enter %s", label),
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewPriceTooLowError creates a non-retryable price validation error.
func NewPriceTooLowError(price, minimum float64) *StandardError {
	return &StandardError{
		Code:      ErrCodePriceTooLow,
		Message:   "Please enter a valid property price",
		Details:   fmt.Sprintf("price: %v, minimum: %v", price, minimum),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": "propertyPrice"},
		Timestamp: time.Now().UTC(),
	}
}

// NewNoImagesError creates a non-retryable validation error for a draft with
// no successfully uploaded images.
func NewNoImagesError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoImages,
		Message:   "Please add at least one image of the property",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownCategoryError creates a non-retryable error for a sub-category
// absent from the schema table.
func NewUnknownCategoryError(subCategory string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCategory,
		Message:   "Unknown property category",
		Details:   fmt.Sprintf("subCategory: %s", subCategory),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSerializationFailedError creates a non-retryable internal error. A draft
// that validated but failed to serialize indicates a coercion bug, not bad input.
func NewSerializationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSerializationFailed,
		Message:   "Failed to prepare property payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmitInFlightError creates a non-retryable error for a duplicate submit.
func NewSubmitInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmitInFlight,
		Message:   "A submission is already in progress",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImageTooLargeError creates a non-retryable per-file size error.
func NewImageTooLargeError(fileName string, size, limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeImageTooLarge,
		Message:   "Image exceeds the maximum allowed size",
		Details:   fmt.Sprintf("file: %s, size: %d, limit: %d", fileName, size, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedImageTypeError creates a non-retryable content-type error.
func NewUnsupportedImageTypeError(fileName, contentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedImageType,
		Message:   "Only image files can be uploaded",
		Details:   fmt.Sprintf("file: %s, contentType: %s", fileName, contentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTooManyImagesError creates a non-retryable batch-size error.
func NewTooManyImagesError(count, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeTooManyImages,
		Message:   fmt.Sprintf("You can upload a maximum of %d images", limit),
		Details:   fmt.Sprintf("count: %d, limit: %d", count, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadFailedError creates a retryable upload transport error.
func NewUploadFailedError(fileName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadFailed,
		Message:   "Image upload failed",
		Details:   fmt.Sprintf("file: %s, error: %s", fileName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a retryable rate-limit error.
func NewRateLimitedError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests, please try again shortly",
		Details:   fmt.Sprintf("service: %s", service),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMobileNumberError creates a non-retryable format error for a
// mobile number that is not ten digits.
func NewInvalidMobileNumberError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMobileNumber,
		Message:   "Please enter a valid 10-digit mobile number",
		Retryable: false,
		Metadata:  map[string]interface{}{"field": "mobileNumber"},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidOTPError creates a non-retryable format error for a malformed
// verification code.
func NewInvalidOTPError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidOTP,
		Message:   "The verification code must be 4 digits",
		Retryable: false,
		Metadata:  map[string]interface{}{"field": "otp"},
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPSendFailedError creates a retryable OTP dispatch error.
func NewOTPSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPSendFailed,
		Message:   "Could not send the verification code",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPVerifyFailedError creates a non-retryable OTP mismatch error.
func NewOTPVerifyFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPVerifyFailed,
		Message:   "Invalid verification code",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionInvalidError creates a non-retryable session error.
func NewSessionInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionInvalid,
		Message:   "Your session has expired, please sign in again",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError creates a retryable connectivity error.
func NewUpstreamUnavailableError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   "Something went wrong, please try again",
		Details:   fmt.Sprintf("service: %s, error: %s", service, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamTimeoutError creates a retryable timeout error.
func NewUpstreamTimeoutError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   "The request timed out, please try again",
		Details:   fmt.Sprintf("service: %s", service),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBadUpstreamResponseError creates a non-retryable decode error.
func NewBadUpstreamResponseError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBadUpstreamResponse,
		Message:   "Something went wrong, please try again",
		Details:   fmt.Sprintf("service: %s, error: %s", service, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable not-found error.
func NewResourceNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadLimitError maps a structured upstream limit violation. limits
// carries the numbers the upstream reported (maxBytes, maxFiles and so on).
func NewPayloadLimitError(code ErrorCode, limits map[string]interface{}) *StandardError {
	var msg string
	switch code {
	case ErrCodePayloadTooLarge:
		msg = "The uploaded data is too large"
	case ErrCodeTooManyFiles:
		msg = "Too many files attached"
	case ErrCodeTotalSizeTooLarge:
		msg = "The combined upload size is too large"
	default:
		msg = "Upload rejected by the server"
	}
	return &StandardError{
		Code:      code,
		Message:   msg,
		Retryable: false,
		Metadata:  limits,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "OTP") || strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "MOBILE"):
		return "AUTH"
	case strings.Contains(codeStr, "IMAGE") || strings.Contains(codeStr, "UPLOAD") || strings.Contains(codeStr, "FILES") || strings.Contains(codeStr, "SIZE") || strings.Contains(codeStr, "PAYLOAD"):
		return "MEDIA"
	case strings.Contains(codeStr, "UPSTREAM") || strings.Contains(codeStr, "RATE"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "MISSING") || strings.Contains(codeStr, "PRICE") || strings.Contains(codeStr, "CATEGORY") || strings.Contains(codeStr, "NO_IMAGES"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
