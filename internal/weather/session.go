package weather

import "sync"

// Session holds the record currently shown to one user.
// The zero value is an empty session.
type Session struct {
	mu      sync.Mutex
	current *Record
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Current returns the record last shown, if any.
func (s *Session) Current() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Record{}, false
	}
	return *s.current, true
}

func (s *Session) set(rec Record) {
	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()
}
