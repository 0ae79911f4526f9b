package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/pages/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a page repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pageColumns = "id, domain_id, author_id, title, slug, content, cover_image_url, hierarchy, updated_at"

// GetByID returns the page for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Page, error) {
	var p domain.Page
	err := r.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE id = $1", id).
		Scan(&p.ID, &p.DomainID, &p.AuthorID, &p.Title, &p.Slug, &p.Content, &p.CoverImageURL, &p.Hierarchy, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.StoreError(err)
	}
	return &p, nil
}

// ListByDomain returns page summaries (with section counts) for the domain,
// ordered by hierarchy.
func (r *PostgresRepository) ListByDomain(ctx context.Context, domainID string) ([]*domain.Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.hierarchy, COUNT(s.id)
		 FROM pages p
		 LEFT JOIN sections s ON s.page_id = p.id
		 WHERE p.domain_id = $1
		 GROUP BY p.id, p.title, p.hierarchy
		 ORDER BY p.hierarchy`, domainID)
	if err != nil {
		return nil, db.StoreError(err)
	}
	defer rows.Close()

	var out []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.Hierarchy, &s.SectionCount); err != nil {
			return nil, db.StoreError(err)
		}
		out = append(out, &s)
	}
	return out, db.StoreError(rows.Err())
}

// Create persists the page. The page must have ID set. A duplicate slug
// surfaces as the database's unique-violation error.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Page) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pages (id, domain_id, author_id, title, slug, content, cover_image_url, hierarchy, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.DomainID, p.AuthorID, p.Title, p.Slug, p.Content, p.CoverImageURL, p.Hierarchy, p.UpdatedAt)
	return db.StoreError(err)
}

// Update updates the page's editable fields. DomainID and AuthorID are fixed
// at creation.
func (r *PostgresRepository) Update(ctx context.Context, p *domain.Page) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pages SET title = $2, slug = $3, content = $4, cover_image_url = $5, hierarchy = $6, updated_at = $7
		 WHERE id = $1`,
		p.ID, p.Title, p.Slug, p.Content, p.CoverImageURL, p.Hierarchy, time.Now().UTC())
	return db.StoreError(err)
}

// Delete removes the page; its sections and their media cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM pages WHERE id = $1", id)
	return db.StoreError(err)
}
