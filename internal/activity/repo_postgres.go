package activity

import (
	"context"
	"database/sql"
)

// NOTE: This store assumes the following table exists (migrations/001_init.sql):
// - user_activities (id uuid PK, user_id uuid NULL REFERENCES users,
//   timestamp defaulted by the database, INSERT-only)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, r Record) (Record, error) {
	// timestamp is intentionally omitted; the column default is authoritative.
	const q = `
INSERT INTO user_activities (id, user_id, action, screen, details, ip_address, user_agent)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, user_id, action, screen, details, timestamp, ip_address, user_agent
`
	var out Record
	err := s.db.QueryRowContext(ctx, q,
		r.ID,
		r.UserID,
		r.Action,
		r.Screen,
		r.Details,
		r.IPAddress,
		r.UserAgent,
	).Scan(
		&out.ID,
		&out.UserID,
		&out.Action,
		&out.Screen,
		&out.Details,
		&out.Timestamp,
		&out.IPAddress,
		&out.UserAgent,
	)
	if err != nil {
		return Record{}, err
	}
	return out, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	const q = `
SELECT id, user_id, action, screen, details, timestamp, ip_address, user_agent
FROM user_activities
WHERE user_id = $1
ORDER BY timestamp DESC
LIMIT $2 OFFSET $3
`
	rows, err := s.db.QueryContext(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *PostgresStore) ListAll(ctx context.Context, limit, offset int) ([]Record, error) {
	const q = `
SELECT id, user_id, action, screen, details, timestamp, ip_address, user_agent
FROM user_activities
ORDER BY timestamp DESC
LIMIT $1 OFFSET $2
`
	rows, err := s.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID,
			&r.UserID,
			&r.Action,
			&r.Screen,
			&r.Details,
			&r.Timestamp,
			&r.IPAddress,
			&r.UserAgent,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
