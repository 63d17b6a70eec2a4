package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var (
	// ErrNotFound is returned when no live session exists for an id.
	ErrNotFound = errors.New("session not found")
)

// sessionEntry is one tracked browser session.
type sessionEntry struct {
	session  *weather.Session
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory session store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*sessionEntry

	// retention configuration
	maxSessions int           // max number of tracked sessions
	maxAge      time.Duration // idle time after which a session expires

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// Limits <= 0 are treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*sessionEntry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Create starts a new empty session and returns its id.
func (s *MemoryStore) Create() (string, *weather.Session) {
	id := uuid.NewString()
	sess := weather.NewSession()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[id] = &sessionEntry{session: sess, lastSeen: s.now()}
	s.enforceRetention()
	return id, sess
}

// Get returns the live session for id and marks it as seen.
func (s *MemoryStore) Get(id string) (*weather.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[id]
	if !ok || s.expired(entry) {
		delete(s.data, id)
		return nil, ErrNotFound
	}
	entry.lastSeen = s.now()
	return entry.session, nil
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired. created reports whether a new id was issued.
func (s *MemoryStore) GetOrCreate(id string) (string, *weather.Session, bool) {
	if sess, err := s.Get(id); err == nil {
		return id, sess, false
	}
	newID, sess := s.Create()
	return newID, sess, true
}

// Len returns the number of tracked sessions, expired ones included until
// the next retention pass.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(e *sessionEntry) bool {
	return s.maxAge > 0 && s.now().Sub(e.lastSeen) > s.maxAge
}

// enforceRetention drops expired sessions, then the least recently seen ones
// above maxSessions. Callers hold mu.
func (s *MemoryStore) enforceRetention() {
	if s.maxAge > 0 {
		for id, e := range s.data {
			if s.expired(e) {
				delete(s.data, id)
			}
		}
	}

	if s.maxSessions <= 0 || len(s.data) <= s.maxSessions {
		return
	}

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.data[ids[i]].lastSeen.Before(s.data[ids[j]].lastSeen)
	})

	over := len(ids) - s.maxSessions
	for _, id := range ids[:over] {
		delete(s.data, id)
	}
}
