package view

import "sync"

// RowLocks tracks in-flight mutations keyed by row identifier. Each row
// accepts at most one concurrent status change; other rows stay editable.
type RowLocks struct {
	mu       sync.Mutex
	inflight map[string]bool
}

// NewRowLocks returns an empty lock table.
func NewRowLocks() *RowLocks {
	return &RowLocks{inflight: make(map[string]bool)}
}

// TryAcquire marks the row as busy. It returns false when a mutation for the
// same row is already in flight.
func (l *RowLocks) TryAcquire(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inflight[id] {
		return false
	}
	l.inflight[id] = true
	return true
}

// Release clears the row's busy flag.
func (l *RowLocks) Release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inflight, id)
}

// Busy reports whether the row has an in-flight mutation.
func (l *RowLocks) Busy(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight[id]
}
