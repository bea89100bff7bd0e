package activity

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory append-only Store useful for tests.
// It is not intended for production use.

type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	clock   func() time.Time
	failErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clock: time.Now}
}

func (s *MemoryStore) Insert(_ context.Context, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return Record{}, s.failErr
	}
	r.Timestamp = s.clock().UTC()
	s.records = append(s.records, r)
	return r, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string, limit, offset int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []Record
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if r.UserID != nil && *r.UserID == userID {
			matched = append(matched, r)
		}
	}
	return page(matched, limit, offset), nil
}

func (s *MemoryStore) ListAll(_ context.Context, limit, offset int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	newest := make([]Record, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		newest = append(newest, s.records[i])
	}
	return page(newest, limit, offset), nil
}

// Records returns a copy of everything written, oldest first.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// FailWith makes every subsequent Insert return err. Test hook for
// simulating an unreachable store.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func page(rs []Record, limit, offset int) []Record {
	if offset >= len(rs) {
		return nil
	}
	rs = rs[offset:]
	if limit > 0 && limit < len(rs) {
		rs = rs[:limit]
	}
	return rs
}
