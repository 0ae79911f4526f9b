package repository

import (
	"context"
	"database/sql"

	"pagecraft/backend/internal/audit/domain"
	"pagecraft/backend/internal/db"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the audit entry. The entry must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Entry) error {
	uid := sql.NullString{String: e.UserID, Valid: e.UserID != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_entries (id, user_id, action, ip, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, uid, e.Action, e.IP, e.Metadata, e.CreatedAt)
	return db.StoreError(err)
}

// ListByUser returns the user's audit entries, newest first, paginated by
// limit and offset.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, ip, metadata, created_at
		 FROM audit_entries WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, db.StoreError(err)
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		var e domain.Entry
		var uid sql.NullString
		if err := rows.Scan(&e.ID, &uid, &e.Action, &e.IP, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, db.StoreError(err)
		}
		e.UserID = uid.String
		out = append(out, &e)
	}
	return out, db.StoreError(rows.Err())
}
