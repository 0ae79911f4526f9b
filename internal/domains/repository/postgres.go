package repository

import (
	"context"
	"database/sql"
	"errors"

	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/domains/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a domain repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the domain for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Domain, error) {
	var d domain.Domain
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, owner_id, created_at FROM domains WHERE id = $1", id).
		Scan(&d.ID, &d.Name, &d.OwnerID, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.StoreError(err)
	}
	return &d, nil
}

// ListByOwner returns the domains owned by ownerID, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Domain, error) {
	return r.list(ctx, "SELECT id, name, owner_id, created_at FROM domains WHERE owner_id = $1 ORDER BY created_at", ownerID)
}

// ListAll returns every domain, oldest first. Intended for admin use only;
// handlers must not expose it to non-admin callers.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Domain, error) {
	return r.list(ctx, "SELECT id, name, owner_id, created_at FROM domains ORDER BY created_at")
}

// Create persists the domain. The domain must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, d *domain.Domain) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO domains (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)",
		d.ID, d.Name, d.OwnerID, d.CreatedAt)
	return db.StoreError(err)
}

// Update updates the domain's name. Ownership transfers are not supported.
func (r *PostgresRepository) Update(ctx context.Context, d *domain.Domain) error {
	_, err := r.db.ExecContext(ctx, "UPDATE domains SET name = $2 WHERE id = $1", d.ID, d.Name)
	return db.StoreError(err)
}

// Delete removes the domain; nested pages, sections, media, and SEO rows
// cascade at the database level.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM domains WHERE id = $1", id)
	return db.StoreError(err)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Domain, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.StoreError(err)
	}
	defer rows.Close()

	var out []*domain.Domain
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.OwnerID, &d.CreatedAt); err != nil {
			return nil, db.StoreError(err)
		}
		out = append(out, &d)
	}
	return out, db.StoreError(rows.Err())
}
