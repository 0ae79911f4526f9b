package repository

import (
	"context"
	"database/sql"
	"errors"

	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/sections/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a section repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the section for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	var s domain.Section
	err := r.db.QueryRowContext(ctx,
		"SELECT id, page_id, title, content, position FROM sections WHERE id = $1", id).
		Scan(&s.ID, &s.PageID, &s.Title, &s.Content, &s.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.StoreError(err)
	}
	return &s, nil
}

// ListByPage returns the page's sections ordered by position.
func (r *PostgresRepository) ListByPage(ctx context.Context, pageID string) ([]*domain.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, page_id, title, content, position FROM sections WHERE page_id = $1 ORDER BY position", pageID)
	if err != nil {
		return nil, db.StoreError(err)
	}
	defer rows.Close()

	var out []*domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.PageID, &s.Title, &s.Content, &s.Position); err != nil {
			return nil, db.StoreError(err)
		}
		out = append(out, &s)
	}
	return out, db.StoreError(rows.Err())
}

// Create persists the section. The section must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Section) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sections (id, page_id, title, content, position) VALUES ($1, $2, $3, $4, $5)",
		s.ID, s.PageID, s.Title, s.Content, s.Position)
	return db.StoreError(err)
}

// Update updates the section's title, content, and position. PageID is fixed
// at creation.
func (r *PostgresRepository) Update(ctx context.Context, s *domain.Section) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE sections SET title = $2, content = $3, position = $4 WHERE id = $1",
		s.ID, s.Title, s.Content, s.Position)
	return db.StoreError(err)
}

// Delete removes the section; its media items cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sections WHERE id = $1", id)
	return db.StoreError(err)
}
