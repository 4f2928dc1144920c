package session

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

func tokenExpiringAt(exp time.Time) string {
	return fakeToken(`{"exp":` + strconv.FormatInt(exp.Unix(), 10) + `}`)
}

func newTestGuard(t *testing.T, now time.Time) (*Guard, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	guard := NewGuard(store)
	guard.now = func() time.Time { return now }
	return guard, store
}

func TestGuardNoSession(t *testing.T) {
	guard, _ := newTestGuard(t, time.Now())

	assert.Equal(t, StateNoSession, guard.Check())
	assert.Equal(t, "Please log in to access your dashboard", guard.Message())
}

func TestGuardValidSessionMessages(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{"hours and minutes", 125 * time.Minute, "Session expires in 2 hours and 5 minutes"},
		{"single hour", 61 * time.Minute, "Session expires in 1 hour and 1 minute"},
		{"exact hour", 60 * time.Minute, "Session expires in 1 hour and 0 minutes"},
		{"minutes only", 45 * time.Minute, "Session expires in 45 minutes"},
		{"single minute", 1 * time.Minute, "Session expires in 1 minute"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guard, store := newTestGuard(t, now)
			require.NoError(t, store.Save(Credentials{
				Token: tokenExpiringAt(now.Add(tc.remaining)),
				User:  models.User{ID: "u1"},
			}))

			assert.Equal(t, StateValid, guard.Check())
			assert.Equal(t, tc.want, guard.Message())
			assert.Equal(t, now.Add(tc.remaining).Unix(), guard.ExpiresAt().Unix())
		})
	}
}

func TestGuardExpiredSessionClearsStore(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	guard, store := newTestGuard(t, now)
	require.NoError(t, store.Save(Credentials{
		Token: tokenExpiringAt(now.Add(-time.Minute)),
		User:  models.User{ID: "u1"},
	}))

	assert.Equal(t, StateExpired, guard.Check())
	assert.Equal(t, "Your session has expired. Please log in again.", guard.Message())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "expired credentials must be cleared")

	// The next check sees an empty store.
	assert.Equal(t, StateNoSession, guard.Check())
}

func TestGuardUnknownExpirationIsUsable(t *testing.T) {
	guard, store := newTestGuard(t, time.Now())
	require.NoError(t, store.Save(Credentials{
		Token: "not-a-jwt",
		User:  models.User{ID: "u1"},
	}))

	assert.Equal(t, StateUnknownExpiration, guard.Check())
	assert.Equal(t, "Session information unavailable", guard.Message())

	// Optimistic: credentials are still handed out.
	creds, ok := guard.Credentials()
	assert.True(t, ok)
	assert.Equal(t, "not-a-jwt", creds.Token)
}

func TestGuardEstablishSessionRejectsExpiredToken(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	guard, store := newTestGuard(t, now)

	err := guard.EstablishSession(Credentials{
		Token: tokenExpiringAt(now.Add(-time.Second)),
		User:  models.User{ID: "u1"},
	})
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, ok, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.False(t, ok, "rejected credentials must not be persisted")
}

func TestGuardEstablishAndLogout(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	guard, store := newTestGuard(t, now)

	require.NoError(t, guard.EstablishSession(Credentials{
		Token: tokenExpiringAt(now.Add(2 * time.Hour)),
		User:  models.User{ID: "u1"},
	}))
	assert.Equal(t, StateValid, guard.State())

	creds, ok := guard.Credentials()
	require.True(t, ok)
	assert.Equal(t, "u1", creds.User.ID)

	require.NoError(t, guard.Logout())
	assert.Equal(t, StateNoSession, guard.State())
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok = guard.Credentials()
	assert.False(t, ok)
}

func TestGuardRunStops(t *testing.T) {
	guard, _ := newTestGuard(t, time.Now())

	done := make(chan struct{})
	go func() {
		guard.Run()
		close(done)
	}()

	// Give Run a moment to perform its initial check, then stop it.
	time.Sleep(10 * time.Millisecond)
	guard.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("guard did not stop")
	}
}
