package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/jobtrackr-be/internal/database"
	"github.com/dcastano/jobtrackr-be/internal/models"
	"github.com/dcastano/jobtrackr-be/internal/services"
	"github.com/dcastano/jobtrackr-be/internal/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	hub := websocket.NewHub()
	go hub.Run()

	events := services.NewEventService(db, hub)
	router := NewRouter(Deps{
		Hub:        hub,
		Users:      services.NewUserService(db),
		Metrics:    services.NewMetricService(db, events),
		Jobs:       services.NewJobService(db, events),
		Challenges: services.NewChallengeService(db, events),
		Prep:       services.NewPrepService(db, events),
		Dashboard:  services.NewDashboardService(db),
		Events:     events,
		JWTSecret:  []byte("router-test-secret"),
		ClientURL:  "http://localhost:5173",
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func registerUser(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/metrics", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/jobs", "garbage-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "ada@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
			"name":     "Ada Again",
			"email":    "ada@example.com",
			"password": "hunter22",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "ada@example.com",
			"password": "wrong",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid login", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "ada@example.com",
			"password": "hunter22",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "ada@example.com", body.User.Email)
		assert.Empty(t, body.User.PasswordHash, "password hash must never leave the server")
	})
}

func TestMetricOwnership(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := registerUser(t, ts, "owner@example.com")
	otherToken := registerUser(t, ts, "other@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/metrics", ownerToken, map[string]interface{}{
		"name":   "Applications sent",
		"target": 50,
		"unit":   "applications",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var metric models.Metric
	decodeBody(t, resp, &metric)
	require.NotEmpty(t, metric.ID)
	assert.Equal(t, 0.0, metric.Current)

	metricURL := fmt.Sprintf("%s/api/metrics/%s", ts.URL, metric.ID)

	t.Run("owner can read", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, metricURL, ownerToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("foreign row is forbidden", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, metricURL, otherToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/metrics/no-such-id", ownerToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("log increments current", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, metricURL+"/logs", ownerToken, map[string]interface{}{
			"value": 3,
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, http.MethodGet, metricURL, ownerToken, nil)
		var updated models.Metric
		decodeBody(t, resp, &updated)
		assert.Equal(t, 3.0, updated.Current)
		assert.Len(t, updated.Logs, 1)
	})
}

func TestDashboardSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "dash@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/jobs", token, map[string]string{
		"company":  "Initech",
		"jobTitle": "Engineer",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/metrics/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary models.DashboardSummary
	decodeBody(t, resp, &summary)
	assert.Equal(t, 1, summary.JobStats.TotalApplications)
	assert.True(t, summary.Streak.HasAppliedToday)
	assert.Empty(t, summary.Challenges)
}

func TestJobStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "stats@example.com")

	for _, company := range []string{"Initech", "Globex"} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/jobs", token, map[string]string{
			"company":  company,
			"jobTitle": "Engineer",
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/jobs/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.JobStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, 2, stats.TotalApplications)
	assert.Equal(t, 2, stats.StatusCounts[models.StatusApplied])
	assert.Len(t, stats.ApplicationsPerDay, 30)
}
