// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"context"
	"sync"
)

// MemorySet is a process-local VisitedSet for runs without a state
// database. The mutex keeps MarkIfNew atomic (R3.2).
type MemorySet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemorySet returns an empty in-memory visited set.
func NewMemorySet() *MemorySet {
	return &MemorySet{seen: make(map[string]struct{})}
}

// MarkIfNew records id as visited and reports whether it was new.
func (m *MemorySet) MarkIfNew(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[id]; ok {
		return false, nil
	}
	m.seen[id] = struct{}{}
	return true, nil
}

// Len returns the number of identifiers marked so far.
func (m *MemorySet) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}
