// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Resolver turns device coordinates into a human-readable address.
type Resolver interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// New picks the resolver for the configured endpoint. With no endpoint the
// raw-coordinate fallback is used, so location lookups always produce
// something displayable.
func New(endpoint string) Resolver {
	if endpoint == "" {
		return CoordinateResolver{}
	}
	return NewClient(endpoint)
}

// Client resolves addresses against a Nominatim-shaped HTTP endpoint:
// GET {base}?lat=..&lon=..&format=json returning {"display_name": "..."}.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if payload.DisplayName == "" {
		return "", fmt.Errorf("geocode endpoint returned no address")
	}
	return payload.DisplayName, nil
}

// CoordinateResolver is the no-endpoint fallback: it renders the raw
// coordinates as the address string.
type CoordinateResolver struct{}

func (CoordinateResolver) Reverse(_ context.Context, lat, lon float64) (string, error) {
	return Coordinates(lat, lon), nil
}

// Coordinates formats a raw coordinate pair for display, also used when a
// lookup against a real endpoint fails.
func Coordinates(lat, lon float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lon)
}
