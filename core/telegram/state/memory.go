package state

import (
	"sync"
	"time"
)

// Manager keeps one session per user id, guarded by a single lock. Sessions
// are ephemeral: they exist only while a multi-step interaction is in
// progress and are dropped on completion, cancellation, or idle eviction.
type Manager[D any] struct {
	mu       sync.RWMutex
	sessions map[int64]*Session[D]
	now      func() time.Time
}

// NewManager constructs an empty in-memory manager.
func NewManager[D any]() *Manager[D] {
	return &Manager[D]{
		sessions: make(map[int64]*Session[D]),
		now:      time.Now,
	}
}

// Get returns a copy of the user's session, or a default idle session when
// none exists.
func (m *Manager[D]) Get(userID int64) Session[D] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return *s
	}
	return Session[D]{State: StateIdle}
}

// Update applies fn to the user's session, creating it first if necessary,
// and stamps the last-seen time.
func (m *Manager[D]) Update(userID int64, fn func(*Session[D])) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session[D]{State: StateIdle}
		m.sessions[userID] = s
	}
	fn(s)
	s.LastSeen = m.now()
}

// SetState transitions the user to the given state, keeping the data.
func (m *Manager[D]) SetState(userID int64, st State) {
	m.Update(userID, func(s *Session[D]) { s.State = st })
}

// StateOf returns the current state of a user, or StateIdle if none exists.
func (m *Manager[D]) StateOf(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return s.State
	}
	return StateIdle
}

// InProgress reports whether the user currently has an active non-idle state.
func (m *Manager[D]) InProgress(userID int64) bool {
	return m.StateOf(userID) != StateIdle
}

// Clear removes the entire session for a user, discarding any draft data.
func (m *Manager[D]) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len returns the number of live sessions.
func (m *Manager[D]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than maxIdle and returns how many
// were dropped. A non-positive maxIdle disables eviction.
func (m *Manager[D]) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
