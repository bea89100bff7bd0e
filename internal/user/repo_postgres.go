package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// NOTE: This repository assumes the following table exists (migrations/001_init.sql):
// - users (id uuid PK, email UNIQUE, deleted_at nullable for soft delete)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, u User) (User, error) {
	const q = `
INSERT INTO users (id, name, email, password, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, name, email, password, is_active, created_at, updated_at, deleted_at
`
	var out User
	err := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.Password,
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(
		&out.ID,
		&out.Name,
		&out.Email,
		&out.Password,
		&out.IsActive,
		&out.CreatedAt,
		&out.UpdatedAt,
		&out.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return out, nil
}

func (r *PostgresRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, name, email, password, is_active, created_at, updated_at, deleted_at
FROM users
WHERE email = $1 AND deleted_at IS NULL
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT id, name, email, password, is_active, created_at, updated_at, deleted_at
FROM users
WHERE id = $1 AND deleted_at IS NULL
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresRepo) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
// The service pre-checks the email, but a concurrent register can still race
// into the constraint.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
