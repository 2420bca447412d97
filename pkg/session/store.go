package session

import "sync"

// Store holds live sessions. Lock hands out a per-session-id mutex so that
// concurrent turns on the same session are processed one at a time; callers
// hold it across the whole record-reply-report cycle.
type Store interface {
	Get(id string) (*Session, bool)
	Put(s *Session)
	Delete(id string)
	List() []*Session
	Len() int
	Lock(id string) func()
}

// MemoryStore in-process Store implementation
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.locks, id)
}

func (m *MemoryStore) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Lock acquires the per-id mutex and returns its release func
func (m *MemoryStore) Lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	m.mu.Unlock()
	l.Lock()
	return l.Unlock
}
