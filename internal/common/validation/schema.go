package validation

import (
	"regexp"

	apperrors "listing-frontdesk/internal/common/errors"
)

// Format helpers shared by the auth handlers and clients. Each returns a
// StandardError so malformed input maps to a 4xx, never a generic 500.

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern    = regexp.MustCompile(`^\d{4}$`)
)

// ValidateMobileNumber checks the 10-digit mobile number format.
func ValidateMobileNumber(mobile string) *apperrors.StandardError {
	if !mobilePattern.MatchString(mobile) {
		return apperrors.NewInvalidMobileNumberError()
	}
	return nil
}

// ValidateOTP checks the 4-digit one-time password format.
func ValidateOTP(otp string) *apperrors.StandardError {
	if !otpPattern.MatchString(otp) {
		return apperrors.NewInvalidOTPError()
	}
	return nil
}
