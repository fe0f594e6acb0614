// Package api holds the clients for the upstream listing platform: location
// dropdowns, OTP auth, media upload, and property submission/administration.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "listing-frontdesk/internal/common/errors"
	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
)

// Config carries the shared upstream settings.
type Config struct {
	BaseURL string
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// transportError maps a failed round trip to a StandardError.
func transportError(service string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewUpstreamTimeoutError(service)
	}
	return apperrors.NewUpstreamUnavailableError(service, err)
}

// upstreamFailure is the decoded shape of a non-2xx upstream body: either a
// plain {message} or a structured {error: ENUM, ...limits} payload.
type upstreamFailure struct {
	Message string
	Enum    string
	Limits  map[string]interface{}
}

func decodeFailure(body []byte) upstreamFailure {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return upstreamFailure{}
	}

	out := upstreamFailure{Limits: map[string]interface{}{}}
	for k, v := range raw {
		switch k {
		case "message":
			if s, ok := v.(string); ok {
				out.Message = s
			}
		case "error":
			if s, ok := v.(string); ok {
				out.Enum = s
			}
		default:
			out.Limits[k] = v
		}
	}
	return out
}

// mapFailure converts a non-2xx upstream response to a StandardError. The
// structured limit enums take precedence, then the status code.
func mapFailure(service string, status int, body []byte) error {
	failure := decodeFailure(body)

	switch failure.Enum {
	case "PAYLOAD_TOO_LARGE":
		return apperrors.NewPayloadLimitError(apperrors.ErrCodePayloadTooLarge, failure.Limits)
	case "TOO_MANY_FILES":
		return apperrors.NewPayloadLimitError(apperrors.ErrCodeTooManyFiles, failure.Limits)
	case "TOTAL_SIZE_TOO_LARGE":
		return apperrors.NewPayloadLimitError(apperrors.ErrCodeTotalSizeTooLarge, failure.Limits)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return apperrors.NewRateLimitedError(service)
	case status == http.StatusNotFound:
		return apperrors.NewResourceNotFoundError(service, failure.Message)
	case status >= 500:
		return apperrors.NewUpstreamUnavailableError(service,
			fmt.Errorf("status %d: %s", status, failure.Message))
	default:
		message := failure.Message
		if message == "" {
			message = "Something went wrong, please try again"
		}
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeBadUpstreamResponse,
			Message:   message,
			Details:   fmt.Sprintf("service: %s, status: %d", service, status),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}
}

// base bundles what every client needs.
type base struct {
	cfg  Config
	http *httpclient.Client
	log  logger.Logger
}

func (b *base) postJSON(ctx context.Context, service, path string, reqBody, out interface{}) error {
	body, status, err := b.http.PostJSON(ctx, joinURL(b.cfg.BaseURL, path), reqBody, nil)
	if err != nil {
		return transportError(service, err)
	}
	if status < 200 || status >= 300 {
		return mapFailure(service, status, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewBadUpstreamResponseError(service, err)
	}
	return nil
}

func (b *base) getJSON(ctx context.Context, service, path string, out interface{}) error {
	body, status, err := b.http.GetJSON(ctx, joinURL(b.cfg.BaseURL, path), nil)
	if err != nil {
		return transportError(service, err)
	}
	if status < 200 || status >= 300 {
		return mapFailure(service, status, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewBadUpstreamResponseError(service, err)
	}
	return nil
}
