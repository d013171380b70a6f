package events

import "sync"

// Session holds the opaque token that correlates multiple turns into one
// backend-tracked conversation. The caller owns its lifetime: it is set by the
// first session event of a stream (or the trailing field of a non-streaming
// response) and cleared by the new-conversation action, nothing else.
type Session struct {
	mu sync.Mutex
	id string
}

// NewSession returns an unset session.
func NewSession() *Session {
	return &Session{}
}

// ID returns the current identifier and whether one is set.
func (s *Session) ID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.id != ""
}

// Set replaces the identifier. The token is written whole: a reader never
// observes a partial update.
func (s *Session) Set(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

// Clear unsets the identifier so the next request starts a new conversation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
}
