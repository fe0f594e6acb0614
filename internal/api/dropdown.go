package api

import (
	"context"

	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
)

// DropdownClient fetches the location dropdown data (states, cities,
// localities) from the upstream listing platform.
type DropdownClient struct {
	base
}

// NewDropdownClient creates a location dropdown client.
func NewDropdownClient(cfg Config, client *httpclient.Client, log logger.Logger) *DropdownClient {
	return &DropdownClient{base: base{cfg: cfg, http: client, log: log}}
}

// listResponse is the upstream envelope for dropdown lists.
type listResponse struct {
	Data []string `json:"data"`
}

// States returns the list of states available for property addresses.
func (c *DropdownClient) States(ctx context.Context) ([]string, error) {
	var resp listResponse
	if err := c.getJSON(ctx, "locations", "/api/v1/locations/states", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Cities returns the cities of a state.
func (c *DropdownClient) Cities(ctx context.Context, state string) ([]string, error) {
	var resp listResponse
	req := map[string]string{"state": state}
	if err := c.postJSON(ctx, "locations", "/api/v1/locations/cities", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Localities returns the localities of a city, optionally filtered by a
// search prefix.
func (c *DropdownClient) Localities(ctx context.Context, state, city, search string) ([]string, error) {
	var resp listResponse
	req := map[string]string{"state": state, "city": city}
	if search != "" {
		req["search"] = search
	}
	if err := c.postJSON(ctx, "locations", "/api/v1/locations/localities", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
