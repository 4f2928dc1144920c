package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrTokenExpired is returned when a freshly issued token already decodes
// to a past expiry. The server claimed success, but the session would be
// dead on arrival, so the login is treated as failed.
var ErrTokenExpired = errors.New("token expired")

// checkInterval is how often the guard re-derives session validity.
const checkInterval = 60 * time.Second

// State is the guard's view of the current session.
type State int

const (
	// StateNoSession means no credentials are stored.
	StateNoSession State = iota
	// StateValid means the stored token expires in the future.
	StateValid
	// StateExpired means the stored token expired; credentials were cleared.
	StateExpired
	// StateUnknownExpiration means the token's expiry could not be decoded.
	// The session is still treated as usable.
	StateUnknownExpiration
)

// Guard maintains session validity without a round trip: it re-derives the
// stored token's expiry on demand and once a minute while running, clearing
// the persisted credentials the moment they go stale.
type Guard struct {
	store Store
	now   func() time.Time

	mu        sync.Mutex
	state     State
	expiresAt time.Time
	message   string

	ticker *time.Ticker
	done   chan bool
}

// NewGuard creates a guard over the given credential store.
func NewGuard(store Store) *Guard {
	return &Guard{
		store: store,
		now:   time.Now,
		done:  make(chan bool),
	}
}

// Run checks once immediately, then keeps re-checking every minute until
// Stop is called.
func (g *Guard) Run() {
	g.Check()
	g.ticker = time.NewTicker(checkInterval)
	defer g.ticker.Stop()

	for {
		select {
		case <-g.done:
			return
		case <-g.ticker.C:
			g.Check()
		}
	}
}

// Stop halts the periodic re-check.
func (g *Guard) Stop() {
	g.done <- true
}

// Check re-derives session validity from the store and returns the new
// state. An expired session clears the persisted credentials.
func (g *Guard) Check() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	creds, ok, err := g.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session credentials")
		ok = false
	}
	if !ok {
		g.state = StateNoSession
		g.expiresAt = time.Time{}
		g.message = "Please log in to access your dashboard"
		return g.state
	}

	expiresAt, known := ExpirationTime(creds.Token)
	if !known {
		g.state = StateUnknownExpiration
		g.expiresAt = time.Time{}
		g.message = "Session information unavailable"
		return g.state
	}

	now := g.now()
	if !now.Before(expiresAt) {
		if err := g.store.Clear(); err != nil {
			log.Error().Err(err).Msg("Failed to clear expired session")
		}
		g.state = StateExpired
		g.expiresAt = time.Time{}
		g.message = "Your session has expired. Please log in again."
		return g.state
	}

	g.state = StateValid
	g.expiresAt = expiresAt
	g.message = remainingMessage(expiresAt.Sub(now))
	return g.state
}

// EstablishSession stores freshly issued credentials. A token that already
// decodes to a past expiry fails with ErrTokenExpired even though the
// server reported success.
func (g *Guard) EstablishSession(creds Credentials) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	expiresAt, known := ExpirationTime(creds.Token)
	if !known {
		if err := g.store.Save(creds); err != nil {
			return err
		}
		g.state = StateUnknownExpiration
		g.expiresAt = time.Time{}
		g.message = "Session information unavailable"
		return nil
	}

	now := g.now()
	if !now.Before(expiresAt) {
		return ErrTokenExpired
	}

	if err := g.store.Save(creds); err != nil {
		return err
	}
	g.state = StateValid
	g.expiresAt = expiresAt
	g.message = remainingMessage(expiresAt.Sub(now))
	return nil
}

// Logout clears the persisted credentials and resets the guard.
func (g *Guard) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Clear(); err != nil {
		return err
	}
	g.state = StateNoSession
	g.expiresAt = time.Time{}
	g.message = "Please log in to access your dashboard"
	return nil
}

// Credentials returns the stored credentials when the session is usable
// (valid or of unknown expiry).
func (g *Guard) Credentials() (Credentials, bool) {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	if state != StateValid && state != StateUnknownExpiration {
		return Credentials{}, false
	}
	creds, ok, err := g.store.Load()
	if err != nil || !ok {
		return Credentials{}, false
	}
	return creds, true
}

// State returns the last derived state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// ExpiresAt returns the expiry of the current session, zero when unknown.
func (g *Guard) ExpiresAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.expiresAt
}

// Message returns the human-readable session status line.
func (g *Guard) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// remainingMessage renders the countdown shown in the navbar. Hours and
// minutes pluralize independently.
func remainingMessage(remaining time.Duration) string {
	minutes := int(remaining / time.Minute)
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("Session expires in %d %s and %d %s",
			hours, pluralize("hour", hours), minutes%60, pluralize("minute", minutes%60))
	}
	return fmt.Sprintf("Session expires in %d %s", minutes, pluralize("minute", minutes))
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
