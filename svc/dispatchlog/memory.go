package dispatchlog

import (
	"context"
	"slices"
	"sync"
	"time"
)

type pairKey struct {
	userID    string
	emailType string
}

// MemoryLog is an in-process Log for development and tests.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[pairKey]struct{}
	now     func() time.Time
}

// NewMemoryLog creates an empty MemoryLog.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		index: make(map[pairKey]struct{}),
		now:   time.Now,
	}
}

func (m *MemoryLog) Exists(ctx context.Context, userID, emailType string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[pairKey{userID, emailType}]
	return ok, nil
}

func (m *MemoryLog) Append(ctx context.Context, e Entry) error {
	e, err := prepare(e, m.now())
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey{e.UserID, e.EmailType}
	if _, ok := m.index[key]; ok {
		return ErrAlreadyRecorded
	}
	m.index[key] = struct{}{}
	m.entries = append(m.entries, e)
	return nil
}

// Entries returns a copy of all entries in insertion order.
func (m *MemoryLog) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}
