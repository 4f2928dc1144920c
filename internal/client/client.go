// Package client is the Go counterpart of the browser app's data layer: a
// thin API client that keeps its session in a session.Guard and passes the
// bearer token explicitly on every request instead of mutating any shared
// default-header state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dcastano/jobtrackr-be/internal/models"
	"github.com/dcastano/jobtrackr-be/internal/session"
)

// ErrNoSession is returned for authenticated calls without usable
// credentials.
var ErrNoSession = errors.New("no active session")

// Client talks to the jobtrackr API.
type Client struct {
	baseURL string
	http    *http.Client
	guard   *session.Guard
}

// New creates a client for the given API base URL (e.g.
// "http://localhost:8080/api").
func New(baseURL string, guard *session.Guard) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		guard:   guard,
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type apiError struct {
	Message string `json:"message"`
}

// Register creates an account and establishes the session from the issued
// token.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login authenticates and establishes the session from the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, payload map[string]string) (models.User, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.User{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return models.User{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.User{}, decodeError(resp)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return models.User{}, err
	}

	// A token that is already expired at issue time fails the login even
	// though the server reported success.
	if err := c.guard.EstablishSession(session.Credentials{Token: auth.Token, User: auth.User}); err != nil {
		return models.User{}, err
	}
	return auth.User, nil
}

// Logout drops the session.
func (c *Client) Logout() error {
	return c.guard.Logout()
}

// DashboardSummary fetches the aggregated dashboard data.
func (c *Client) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	var summary models.DashboardSummary
	err := c.getJSON(ctx, "/metrics/dashboard/summary", &summary)
	return summary, err
}

// JobStats fetches the job application statistics summary.
func (c *Client) JobStats(ctx context.Context) (models.JobStats, error) {
	var stats models.JobStats
	err := c.getJSON(ctx, "/jobs/stats/summary", &stats)
	return stats, err
}

// PrepStats fetches the prep activity statistics summary.
func (c *Client) PrepStats(ctx context.Context) (models.PrepStats, error) {
	var stats models.PrepStats
	err := c.getJSON(ctx, "/prep/stats/summary", &stats)
	return stats, err
}

// getJSON performs an authenticated GET. The session is re-checked before
// the call, and a response that lands after a logout or expiry is
// discarded rather than applied.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	c.guard.Check()
	creds, ok := c.guard.Credentials()
	if !ok {
		return ErrNoSession
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	// The session may have been cleared while the request was in flight.
	if _, ok := c.guard.Credentials(); !ok {
		return ErrNoSession
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
