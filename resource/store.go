package resource

import (
	"sync"
)

// store is slot storage with handle reuse.
type store struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
}

type entry struct {
	value any
	valid bool
}

func newStore() *store {
	return &store{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

func (s *store) create(value any) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value, valid: true}

	if len(s.freeList) > 0 {
		handle := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[handle-1] = e
		return handle
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries))
}

func (s *store) drop(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(handle) - 1
	if idx >= len(s.entries) {
		return nil, false
	}

	e := &s.entries[idx]
	if !e.valid {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	s.freeList = append(s.freeList, handle)
	return value, true
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// snapshot returns live handles and values without holding the lock afterwards.
func (s *store) snapshot() ([]Handle, []any) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var handles []Handle
	var values []any
	for i, e := range s.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
			values = append(values, e.value)
		}
	}
	return handles, values
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.freeList = nil
}
