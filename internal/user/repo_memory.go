package user

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu    sync.Mutex
	users map[string]User // keyed by id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email && existing.DeletedAt == nil {
			return User{}, ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *MemoryRepo) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// Put replaces a stored user directly, bypassing uniqueness checks.
// Test helper for setting up inactive or soft-deleted accounts.
func (r *MemoryRepo) Put(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}
