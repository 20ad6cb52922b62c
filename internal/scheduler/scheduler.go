// Package scheduler runs one-shot deferred tasks keyed by account username.
// It backs loan posting: an approved loan becomes a movement only after the
// configured delay has elapsed.
package scheduler

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Timer is the cancellable handle behind a scheduled task.
type Timer interface {
	Stop() bool
}

// AfterFunc queues fn to run once after d. Production wiring uses the
// standard clock; tests inject a manually fired implementation.
type AfterFunc func(d time.Duration, fn func()) Timer

// StdAfterFunc adapts time.AfterFunc to the Timer interface.
func StdAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Scheduler holds at most one pending task per key. Scheduling under a key
// that already has a pending task replaces it; cancelling a key stops its
// task before it fires.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	after   AfterFunc
	log     *logrus.Logger
	pending map[string]Timer
}

// New returns a scheduler firing tasks after the given delay. A nil after
// falls back to the standard clock.
func New(delay time.Duration, after AfterFunc, log *logrus.Logger) *Scheduler {
	if after == nil {
		after = StdAfterFunc
	}
	return &Scheduler{
		delay:   delay,
		after:   after,
		log:     log,
		pending: make(map[string]Timer),
	}
}

// Schedule queues fn to run after the configured delay, replacing any task
// already pending for key.
func (s *Scheduler) Schedule(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[key]; ok {
		t.Stop()
		s.log.Warnf("Replacing pending task for %s", key)
	}
	s.pending[key] = s.after(s.delay, func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops the pending task for key. Reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.pending, key)
	return true
}

// Pending reports whether a task is queued for key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}
