package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureHub struct {
	userIDs  []string
	payloads [][]byte
}

func (c *captureHub) BroadcastTo(userID string, message []byte) {
	c.userIDs = append(c.userIDs, userID)
	c.payloads = append(c.payloads, message)
}

func TestEventServiceRecordsAndBroadcasts(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "events@example.com")
	hub := &captureHub{}
	service := NewEventService(db, hub)

	service.CreateEvent(user.ID, "job.create", "info", "Application to Acme tracked.", nil)

	events, err := service.GetRecentEvents(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "job.create", events[0].Type)
	assert.Equal(t, user.ID, events[0].UserID)

	require.Len(t, hub.payloads, 1)
	assert.Equal(t, user.ID, hub.userIDs[0])
	assert.Contains(t, string(hub.payloads[0]), "job.create")
}

func TestEventServicePruneOlderThan(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "prune@example.com")
	service := NewEventService(db, nil)

	old := time.Now().AddDate(0, 0, -40)
	_, err := db.Exec(
		"INSERT INTO events (id, type, level, message, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		"old-event", "job.create", "info", "stale", user.ID, old,
	)
	require.NoError(t, err)
	service.CreateEvent(user.ID, "job.update", "info", "fresh", nil)

	removed, err := service.PruneOlderThan(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	events, err := service.GetRecentEvents(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "fresh", events[0].Message)
}
