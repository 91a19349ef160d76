package chat

import (
	"sync"
	"time"
)

// Roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Role string

// Turn is one message of a Session. Turns are never modified once appended.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"` // UTC
}

// Session is a snapshot of one chat thread.
type Session struct {
	ID        string    `json:"sessionId"`
	Turns     []Turn    `json:"messages"`
	CreatedAt time.Time `json:"createdAt"` // time of the first turn; zero while empty
}

func (s Session) IsEmpty() bool { return len(s.Turns) == 0 }

// expired reports whether the session must be evicted by a sweep.
// A session without turns has no start time and is always considered expired.
func (s *Session) expired(maxAge time.Duration, now time.Time) bool {
	if len(s.Turns) == 0 {
		return true
	}
	return now.Sub(s.Turns[0].CreatedAt) > maxAge
}

func (s *Session) snapshot() Session {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	return Session{ID: s.ID, Turns: turns, CreatedAt: s.CreatedAt}
}

// Store keeps chat sessions in memory, keyed by the caller-supplied session ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns a copy of the session, creating an empty one if it does not exist.
func (st *Store) GetOrCreate(id string) Session {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	if ok {
		defer st.mu.RUnlock()
		return sess.snapshot()
	}
	st.mu.RUnlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.getOrCreate(id).snapshot()
}

// Get returns a copy of the session if it exists.
func (st *Store) Get(id string) (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return Session{}, false
	}
	return sess.snapshot(), true
}

// Append adds turns to the end of the session, creating it if needed,
// and returns a copy of the session as it stands right after the append.
func (st *Store) Append(id string, turns ...Turn) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess := st.getOrCreate(id)
	if len(sess.Turns) == 0 && len(turns) > 0 {
		sess.CreatedAt = turns[0].CreatedAt
	}
	sess.Turns = append(sess.Turns, turns...)
	return sess.snapshot()
}

// Clear removes the session. Clearing an unknown session is a no-op.
func (st *Store) Clear(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// SweepExpired removes every session whose first turn is older than maxAge, as well as empty sessions.
// It returns the number of removed sessions.
func (st *Store) SweepExpired(maxAge time.Duration, now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	var removed int
	for id, sess := range st.sessions {
		if sess.expired(maxAge, now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// getOrCreate must be called with the write lock held.
func (st *Store) getOrCreate(id string) *Session {
	sess, ok := st.sessions[id]
	if !ok {
		sess = &Session{ID: id, Turns: make([]Turn, 0, 2)}
		st.sessions[id] = sess
	}
	return sess
}
