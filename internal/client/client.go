// Package client is the browser-side half of the planner: an HTTP client for
// the trips API and the cached application state built from it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripplanner/internal/domain/models"
)

// ListTimeout bounds GET /trips. No other call has a deadline.
const ListTimeout = 5 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d", e.Status)
	}
	return fmt.Sprintf("api error: %d - %s", e.Status, e.Message)
}

type Client struct {
	// BaseURL includes the /api prefix, e.g. http://localhost:8080/api
	BaseURL     string
	HTTP        *http.Client
	ListTimeout time.Duration
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTP:        http.DefaultClient,
		ListTimeout: ListTimeout,
	}
}

// Test calls the liveness endpoint.
func (c *Client) Test(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/test", nil, nil)
}

func (c *Client) ListTrips(ctx context.Context) ([]models.Trip, error) {
	timeout := c.ListTimeout
	if timeout <= 0 {
		timeout = ListTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var trips []models.Trip
	if err := c.do(ctx, http.MethodGet, "/trips", nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *Client) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	var trip models.Trip
	err := c.do(ctx, http.MethodGet, "/trips/"+url.PathEscape(id), nil, &trip)
	return trip, err
}

func (c *Client) CreateTrip(ctx context.Context, in models.NewTrip) (models.Trip, error) {
	var trip models.Trip
	err := c.do(ctx, http.MethodPost, "/trips", in, &trip)
	return trip, err
}

func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/trips/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateCity(ctx context.Context, in models.NewCity) (models.City, error) {
	var city models.City
	err := c.do(ctx, http.MethodPost, "/cities", in, &city)
	return city, err
}

func (c *Client) UpdateCityPosition(ctx context.Context, id string, pos models.Position) (models.City, error) {
	var city models.City
	err := c.do(ctx, http.MethodPatch, "/cities/"+url.PathEscape(id), models.CityPositionPatch{Position: &pos}, &city)
	return city, err
}

func (c *Client) DeleteCity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cities/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateActivity(ctx context.Context, in models.NewActivity) (models.Activity, error) {
	var act models.Activity
	err := c.do(ctx, http.MethodPost, "/activities", in, &act)
	return act, err
}

func (c *Client) UpdateActivity(ctx context.Context, id string, f models.ActivityFields) (models.Activity, error) {
	var act models.Activity
	err := c.do(ctx, http.MethodPatch, "/activities/"+url.PathEscape(id), f, &act)
	return act, err
}

func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/activities/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
