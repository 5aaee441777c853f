// internal/session/store.go
//
// Session storage contract plus the in-memory implementation the
// product ships with.  There is no expiry and no server-side
// validation: a record lives until explicit logout or process restart,
// mirroring the trust model of the original client-only build.
package session

import "sync"

// Store persists Session records by token.
type Store interface {
	Put(token string, s Session)
	Get(token string) (Session, bool)
	Delete(token string)
	Len() int
}

// MemoryStore is a mutex-guarded map.  Good enough for a single-binary
// deployment; swap the Store for anything shared when clustering.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Session
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Session)}
}

func (s *MemoryStore) Put(token string, sess Session) {
	s.mu.Lock()
	s.m[token] = sess
	s.mu.Unlock()
}

func (s *MemoryStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.m[token]
	s.mu.RUnlock()
	return sess, ok
}

func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
