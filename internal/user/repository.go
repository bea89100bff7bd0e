package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user: not found")
	ErrEmailTaken = errors.New("user: email already registered")
)

// Repository is the persistence contract for user accounts.
// Implementations must treat soft-deleted rows (deleted_at set) as absent.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}
