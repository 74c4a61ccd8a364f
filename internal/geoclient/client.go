// Package geoclient talks to the geo/fare API: a cached city directory,
// route resolution and backend fare calculation.
package geoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/model"
	"github.com/google/uuid"
)

const (
	citiesPath        = "/api/v1/cities/"
	routeInfoPath     = "/api/v1/cities/route-info"
	calculateFarePath = "/api/v1/bookings/calculate-fare"
	cabTypesPath      = "/api/v1/cab-types"

	maxResponseBytes = 4 << 20
)

// Client is an authenticated JSON client for the geo/fare API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client from configuration
func NewClient(cfg config.ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListCities issues GET /api/v1/cities/. A body without a cities field is
// reported as ErrMalformedResponse; an empty list is valid.
func (c *Client) ListCities(ctx context.Context, popularOnly bool) ([]model.City, error) {
	var query url.Values
	if popularOnly {
		query = url.Values{"popular_only": {"true"}}
	}

	var resp model.CityListResponse
	if err := c.do(ctx, http.MethodGet, citiesPath, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Cities == nil {
		return nil, fmt.Errorf("%w: missing cities field", ErrMalformedResponse)
	}
	return *resp.Cities, nil
}

// GetRouteInfo issues POST /api/v1/cities/route-info with the names as given
func (c *Client) GetRouteInfo(ctx context.Context, originCity, destinationCity string) (*model.RouteInfo, error) {
	body := model.RouteInfoRequest{
		OriginCity:      originCity,
		DestinationCity: destinationCity,
	}

	var info model.RouteInfo
	if err := c.do(ctx, http.MethodPost, routeInfoPath, nil, body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CalculateFare issues POST /api/v1/bookings/calculate-fare
func (c *Client) CalculateFare(ctx context.Context, req model.FareCalculationRequest) (*model.FareBreakdown, error) {
	var fare model.FareBreakdown
	if err := c.do(ctx, http.MethodPost, calculateFarePath, nil, req, &fare); err != nil {
		return nil, err
	}
	return &fare, nil
}

// ListCabTypes issues GET /api/v1/cab-types. A body without a cab_types
// field is reported as ErrMalformedResponse.
func (c *Client) ListCabTypes(ctx context.Context) ([]model.CabType, error) {
	var resp model.CabTypeListResponse
	if err := c.do(ctx, http.MethodGet, cabTypesPath, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.CabTypes == nil {
		return nil, fmt.Errorf("%w: missing cab_types field", ErrMalformedResponse)
	}
	return *resp.CabTypes, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
