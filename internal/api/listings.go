package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	apperrors "listing-frontdesk/internal/common/errors"
	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/form"
)

// ListingClient submits and manages property listings on the upstream
// platform. It satisfies form.Submitter.
type ListingClient struct {
	base
	// submissions carry large multipart bodies and get a longer timeout
	submitHTTP *httpclient.Client
}

// NewListingClient creates a listing client. submitClient is used for the
// multipart property submission; client for everything else.
func NewListingClient(cfg Config, client, submitClient *httpclient.Client, log logger.Logger) *ListingClient {
	return &ListingClient{
		base:       base{cfg: cfg, http: client, log: log},
		submitHTTP: submitClient,
	}
}

var _ form.Submitter = (*ListingClient)(nil)

// Property is the upstream listing record, kept schemaless because the field
// set varies by sub-category.
type Property map[string]interface{}

// SubmitProperty posts a serialized draft as multipart form data and returns
// the stored property id.
func (c *ListingClient) SubmitProperty(ctx context.Context, payload *form.Payload) (string, error) {
	contentType, body, err := payload.Multipart()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		joinURL(c.cfg.BaseURL, "/api/v1/temp/properties"), bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewUpstreamUnavailableError("properties", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.submitHTTP.Do(req)
	if err != nil {
		return "", transportError("properties", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewBadUpstreamResponseError("properties", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", mapFailure("properties", resp.StatusCode, respBody)
	}

	var decoded struct {
		Data struct {
			PropertyID string `json:"propertyId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", apperrors.NewBadUpstreamResponseError("properties", err)
	}
	if decoded.Data.PropertyID == "" {
		return "", apperrors.NewBadUpstreamResponseError("properties",
			fmt.Errorf("response missing propertyId"))
	}

	c.log.Info("Property submitted", map[string]interface{}{
		"property_id": decoded.Data.PropertyID,
	})
	return decoded.Data.PropertyID, nil
}

// GetProperty fetches one stored listing by id.
func (c *ListingClient) GetProperty(ctx context.Context, propertyID string) (Property, error) {
	var resp struct {
		Data Property `json:"data"`
	}
	req := map[string]string{"propertyId": propertyID}
	err := c.postJSON(ctx, "properties", "/api/v1/temp/properties/get-property-by-id", req, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, apperrors.NewResourceNotFoundError("Property", propertyID)
	}
	return resp.Data, nil
}

// ListTempUsers returns the temporary users, for the admin review screen.
func (c *ListingClient) ListTempUsers(ctx context.Context) ([]Property, error) {
	var resp struct {
		Data []Property `json:"data"`
	}
	if err := c.getJSON(ctx, "admin", "/api/v1/temp/users", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListTempProperties returns temporary listings, optionally filtered. The
// filters pass through as query parameters (subCategory, userId).
func (c *ListingClient) ListTempProperties(ctx context.Context, filters map[string]string) ([]Property, error) {
	path := "/api/v1/temp/properties"
	if len(filters) > 0 {
		query := url.Values{}
		for k, v := range filters {
			query.Set(k, v)
		}
		path += "?" + query.Encode()
	}

	var resp struct {
		Data []Property `json:"data"`
	}
	if err := c.getJSON(ctx, "admin", path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteTempUser removes a temporary user.
func (c *ListingClient) DeleteTempUser(ctx context.Context, userID string) error {
	return c.delete(ctx, "admin", "/api/v1/temp/users/"+url.PathEscape(userID))
}

// DeleteTempProperty removes a temporary listing.
func (c *ListingClient) DeleteTempProperty(ctx context.Context, propertyID string) error {
	return c.delete(ctx, "admin", "/api/v1/temp/properties/"+url.PathEscape(propertyID))
}

func (c *ListingClient) delete(ctx context.Context, service, path string) error {
	body, status, err := c.http.Delete(ctx, joinURL(c.cfg.BaseURL, path), nil)
	if err != nil {
		return transportError(service, err)
	}
	if status < 200 || status >= 300 {
		return mapFailure(service, status, body)
	}
	return nil
}
