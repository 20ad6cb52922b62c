package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move session time forward explicitly.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(ttl)
	m.now = clock.now
	return m, clock
}

func TestStartAndCurrent(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	sess := m.Start("js")
	assert.Equal(t, "js", sess.Username)
	assert.NotEqual(t, "", sess.ID.String())

	got, ok := m.Current("js")
	require.True(t, ok, "Started session should be current")
	assert.Equal(t, sess.ID, got.ID)

	_, ok = m.Current("jd")
	assert.False(t, ok, "Session belongs to a single user")
}

func TestStartReplacesSession(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	m.Start("js")
	m.Start("jd")

	_, ok := m.Current("js")
	assert.False(t, ok, "A new login replaces the previous session")
	_, ok = m.Current("jd")
	assert.True(t, ok)
}

func TestEnd(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	m.Start("js")
	m.End()
	_, ok := m.Current("js")
	assert.False(t, ok, "Ended session is gone")
}

func TestExpiry(t *testing.T) {
	m, clock := newTestManager(time.Minute)

	m.Start("js")
	clock.advance(time.Minute + time.Second)
	_, ok := m.Current("js")
	assert.False(t, ok, "Idle session past the TTL is expired")
}

func TestActivityExtendsSession(t *testing.T) {
	m, clock := newTestManager(time.Minute)

	m.Start("js")
	for i := 0; i < 5; i++ {
		clock.advance(45 * time.Second)
		_, ok := m.Current("js")
		require.True(t, ok, "Each lookup refreshes the activity window")
	}
}

func TestSweep(t *testing.T) {
	m, clock := newTestManager(time.Minute)

	assert.False(t, m.Sweep(), "Nothing to sweep without a session")

	m.Start("js")
	assert.False(t, m.Sweep(), "Fresh session survives the sweep")

	clock.advance(2 * time.Minute)
	assert.True(t, m.Sweep(), "Idle session is swept")
	_, ok := m.Current("js")
	assert.False(t, ok)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	m, clock := newTestManager(0)

	m.Start("js")
	clock.advance(24 * time.Hour)
	_, ok := m.Current("js")
	assert.True(t, ok, "Zero TTL disables expiry")
	assert.False(t, m.Sweep())
}
