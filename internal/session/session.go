// Package session replaces the demo's hidden "current user" global with an
// explicit session object held by a manager.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session ties an authenticated account to its activity window.
type Session struct {
	ID        uuid.UUID
	Username  string
	StartedAt time.Time
	LastSeen  time.Time
}

// Manager holds the single active session; the demo UI never has two users
// signed in at once, so a new login replaces the previous session. Sessions
// also expire after an inactivity TTL.
type Manager struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *Session
}

// NewManager returns a manager expiring sessions idle longer than ttl.
// A ttl of zero disables expiry.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{ttl: ttl, now: time.Now}
}

// Start opens a session for username, replacing any existing one.
func (m *Manager) Start(username string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.current = &Session{
		ID:        uuid.New(),
		Username:  username,
		StartedAt: now,
		LastSeen:  now,
	}
	cp := *m.current
	return &cp
}

// Current returns the active session if it belongs to username and has not
// gone idle past the TTL. A successful lookup refreshes the activity window.
func (m *Manager) Current(username string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.Username != username {
		return nil, false
	}
	now := m.now()
	if m.expired(now) {
		m.current = nil
		return nil, false
	}
	m.current.LastSeen = now
	cp := *m.current
	return &cp, true
}

// End closes the active session, if any.
func (m *Manager) End() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Sweep drops the session once it has been idle past the TTL. Reports
// whether a session was expired.
func (m *Manager) Sweep() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || !m.expired(m.now()) {
		return false
	}
	m.current = nil
	return true
}

func (m *Manager) expired(now time.Time) bool {
	return m.ttl > 0 && now.Sub(m.current.LastSeen) > m.ttl
}
