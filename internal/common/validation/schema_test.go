package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "listing-frontdesk/internal/common/errors"
)

func TestValidateMobileNumber(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		valid  bool
	}{
		{"ten digits", "9876543210", true},
		{"too short", "12345", false},
		{"too long", "98765432100", false},
		{"letters", "not-a-number", false},
		{"empty", "", false},
		{"digits with spaces", "98765 43210", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMobileNumber(tt.mobile)
			if tt.valid {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidMobileNumber, err.Code)
			assert.False(t, err.Retryable)
		})
	}
}

func TestValidateOTP(t *testing.T) {
	tests := []struct {
		name  string
		otp   string
		valid bool
	}{
		{"four digits", "1234", true},
		{"leading zeros", "0042", true},
		{"three digits", "123", false},
		{"five digits", "12345", false},
		{"letters", "abcd", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOTP(tt.otp)
			if tt.valid {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidOTP, err.Code)
			assert.False(t, err.Retryable)
		})
	}
}
