package discard

import "sync"

// UsedSet is a process-wide append-only membership set. Verification reads
// it, consumption writes it. An implementation backed by a shared store lets
// multiple instances agree on spent key images and nullifiers.
type UsedSet interface {
	Contains(key string) bool
	// Add inserts the key and reports whether it was newly added.
	Add(key string) bool
}

// MemoryUsedSet is the single-process implementation.
type MemoryUsedSet struct {
	mutex sync.RWMutex
	keys  map[string]bool
}

func NewMemoryUsedSet() *MemoryUsedSet {
	return &MemoryUsedSet{keys: make(map[string]bool)}
}

func (s *MemoryUsedSet) Contains(key string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.keys[key]
}

func (s *MemoryUsedSet) Add(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.keys[key] {
		return false
	}
	s.keys[key] = true
	return true
}

func (s *MemoryUsedSet) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.keys)
}
