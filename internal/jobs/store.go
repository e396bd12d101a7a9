package jobs

import "sync"

// Store maps job ids to job state so status polling is independent of job
// progress. Implementations must be safe for concurrent use: a Get observes
// either the fully-prior or fully-new value of a concurrent Put, never a
// partial write.
type Store interface {
	Put(id string, job Job)
	Get(id string) (Job, bool)
}

// MemoryStore is an in-process Store. Entries are never evicted and persist
// for the process lifetime; that matches the job contract (results stay
// retrievable) but means memory grows with submission count.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]Job)}
}

// Put stores a snapshot of job under id, replacing any prior value.
func (s *MemoryStore) Put(id string, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = job
}

// Get returns the job stored under id. Job is a value type, so callers get a
// snapshot that later Puts cannot mutate.
func (s *MemoryStore) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Len reports the number of stored jobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
