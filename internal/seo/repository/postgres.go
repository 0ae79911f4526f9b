package repository

import (
	"context"
	"database/sql"
	"errors"

	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/seo/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an SEO repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByDomain returns the domain's SEO record, or nil if none exists.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByDomain(ctx context.Context, domainID string) (*domain.Record, error) {
	var s domain.Record
	err := r.db.QueryRowContext(ctx,
		`SELECT id, domain_id, meta_title, meta_description, keywords, og_image_url
		 FROM seo WHERE domain_id = $1`, domainID).
		Scan(&s.ID, &s.DomainID, &s.MetaTitle, &s.MetaDescription, &s.Keywords, &s.OGImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.StoreError(err)
	}
	return &s, nil
}

// Upsert inserts the record or replaces the existing one for the same domain.
// The one-record-per-domain rule rides on the domain_id unique constraint.
func (r *PostgresRepository) Upsert(ctx context.Context, s *domain.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO seo (id, domain_id, meta_title, meta_description, keywords, og_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (domain_id) DO UPDATE
		 SET meta_title = EXCLUDED.meta_title,
		     meta_description = EXCLUDED.meta_description,
		     keywords = EXCLUDED.keywords,
		     og_image_url = EXCLUDED.og_image_url`,
		s.ID, s.DomainID, s.MetaTitle, s.MetaDescription, s.Keywords, s.OGImageURL)
	return db.StoreError(err)
}

// Delete removes the domain's SEO record if present.
func (r *PostgresRepository) Delete(ctx context.Context, domainID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM seo WHERE domain_id = $1", domainID)
	return db.StoreError(err)
}
