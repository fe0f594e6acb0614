package api

import (
	"context"
	"fmt"
	"time"

	apperrors "listing-frontdesk/internal/common/errors"
	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/common/validation"
	"listing-frontdesk/internal/session"
)

// AuthClient talks to the upstream OTP login and temp signup endpoints.
type AuthClient struct {
	base
}

// NewAuthClient creates an auth client.
func NewAuthClient(cfg Config, client *httpclient.Client, log logger.Logger) *AuthClient {
	return &AuthClient{base: base{cfg: cfg, http: client, log: log}}
}

// upstreamUser is the user record shape the listing platform returns.
type upstreamUser struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	UserType string `json:"userType"`
}

func (u upstreamUser) toSessionUser() session.User {
	return session.User{ID: u.ID, FullName: u.FullName, Type: u.UserType}
}

// SendOTP asks the upstream to dispatch a login code to a mobile number.
func (c *AuthClient) SendOTP(ctx context.Context, mobileNumber string) error {
	if err := validation.ValidateMobileNumber(mobileNumber); err != nil {
		return err
	}

	req := map[string]string{"mobileNumber": mobileNumber}
	if err := c.postJSON(ctx, "auth", "/api/v1/temp/login/send-otp", req, nil); err != nil {
		c.log.Error("Failed to send OTP", map[string]interface{}{"error": err.Error()})
		if stdErr, ok := err.(*apperrors.StandardError); ok && stdErr.Retryable {
			return apperrors.NewOTPSendFailedError(err)
		}
		return err
	}
	return nil
}

// VerifyOTP exchanges a mobile number and code for the upstream user record.
func (c *AuthClient) VerifyOTP(ctx context.Context, mobileNumber, otp string) (session.User, error) {
	if err := validation.ValidateMobileNumber(mobileNumber); err != nil {
		return session.User{}, err
	}
	if err := validation.ValidateOTP(otp); err != nil {
		return session.User{}, err
	}

	var resp struct {
		Data upstreamUser `json:"data"`
	}
	req := map[string]string{"mobileNumber": mobileNumber, "otp": otp}
	err := c.postJSON(ctx, "auth", "/api/v1/temp/login/verify-otp", req, &resp)
	if err != nil {
		if stdErr, ok := err.(*apperrors.StandardError); ok && stdErr.Code == apperrors.ErrCodeBadUpstreamResponse {
			// A rejected code comes back as a plain 4xx with a message
			return session.User{}, apperrors.NewOTPVerifyFailedError(stdErr.Message)
		}
		return session.User{}, err
	}
	if resp.Data.ID == "" {
		return session.User{}, apperrors.NewOTPVerifyFailedError("upstream returned no user")
	}
	return resp.Data.toSessionUser(), nil
}

// GuestSignup provisions a throwaway upstream user so an anonymous visitor
// can post a listing without registering first.
func (c *AuthClient) GuestSignup(ctx context.Context) (session.User, error) {
	req := map[string]string{
		"fullName":     "Guest User",
		"email":        fmt.Sprintf("guest-%d@temp.com", time.Now().UnixNano()),
		"mobileNumber": "0000000000",
	}

	var resp struct {
		Data upstreamUser `json:"data"`
	}
	if err := c.postJSON(ctx, "auth", "/api/v1/temp/signup", req, &resp); err != nil {
		return session.User{}, err
	}
	if resp.Data.ID == "" {
		return session.User{}, apperrors.NewBadUpstreamResponseError("auth",
			fmt.Errorf("signup response missing user id"))
	}

	c.log.Info("Provisioned guest user", map[string]interface{}{"user_id": resp.Data.ID})
	return resp.Data.toSessionUser(), nil
}
