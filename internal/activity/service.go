package activity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DefaultLimit is applied when a list request carries no usable limit.
const DefaultLimit = 100

// Store is the persistence contract for activity records.
//
// It MUST be append-only: no Update/Delete methods are provided.
// Both list operations return records newest first.
type Store interface {
	Insert(ctx context.Context, r Record) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
	ListAll(ctx context.Context, limit, offset int) ([]Record, error)
}

var ErrInvalidRecord = errors.New("activity: invalid record")

// Recorder is the single choke point every tracking path calls to persist an
// activity. Callers in the request path must treat failures as non-fatal:
// a lost record is acceptable, a broken user-facing response is not.
type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Log persists one activity record. userID, details, ip and ua may be nil.
func (r *Recorder) Log(ctx context.Context, userID *string, action, screen string, details, ip, ua *string) (Record, error) {
	if r.store == nil {
		return Record{}, errors.New("activity: store not configured")
	}
	if action == "" || screen == "" {
		return Record{}, ErrInvalidRecord
	}

	rec := Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Screen:    screen,
		Details:   details,
		IPAddress: ip,
		UserAgent: ua,
	}
	return r.store.Insert(ctx, rec)
}

// ListByUser returns one user's records, newest first.
func (r *Recorder) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	limit, offset = clampPage(limit, offset)
	return r.store.ListByUser(ctx, userID, limit, offset)
}

// ListAll returns records across all users, newest first.
func (r *Recorder) ListAll(ctx context.Context, limit, offset int) ([]Record, error) {
	limit, offset = clampPage(limit, offset)
	return r.store.ListAll(ctx, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
