package repository

import (
	"context"
	"database/sql"
	"errors"

	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/media/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a media repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const mediaColumns = "id, section_id, uploaded_by, file_url, alt_text, media_type"

// GetByID returns the media item for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Media, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+mediaColumns+" FROM media WHERE id = $1", id)
	var m domain.Media
	var sectionID sql.NullString
	err := row.Scan(&m.ID, &sectionID, &m.UploaderID, &m.FileURL, &m.AltText, &m.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.StoreError(err)
	}
	m.SectionID = sectionID.String
	return &m, nil
}

// ListBySection returns the media attached to the section.
func (r *PostgresRepository) ListBySection(ctx context.Context, sectionID string) ([]*domain.Media, error) {
	return r.list(ctx, "SELECT "+mediaColumns+" FROM media WHERE section_id = $1 ORDER BY id", sectionID)
}

// ListByUploader returns the media uploaded by the user.
func (r *PostgresRepository) ListByUploader(ctx context.Context, uploaderID string) ([]*domain.Media, error) {
	return r.list(ctx, "SELECT "+mediaColumns+" FROM media WHERE uploaded_by = $1 ORDER BY id", uploaderID)
}

// ListImagesByDomain returns the domain's image media, resolved through its
// sections and pages. Only rows under the named domain are ever returned.
func (r *PostgresRepository) ListImagesByDomain(ctx context.Context, domainID string) ([]*domain.Media, error) {
	return r.list(ctx,
		`SELECT m.id, m.section_id, m.uploaded_by, m.file_url, m.alt_text, m.media_type
		 FROM media m
		 JOIN sections s ON m.section_id = s.id
		 JOIN pages p ON s.page_id = p.id
		 WHERE p.domain_id = $1 AND m.media_type = 'image'
		 ORDER BY p.hierarchy, s.position, m.id`, domainID)
}

// Create persists the media item. The item must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Media) error {
	sectionID := sql.NullString{String: m.SectionID, Valid: m.SectionID != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media (id, section_id, uploaded_by, file_url, alt_text, media_type)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, sectionID, m.UploaderID, m.FileURL, m.AltText, string(m.Type))
	return db.StoreError(err)
}

// Update updates the media item's placement and description fields.
func (r *PostgresRepository) Update(ctx context.Context, m *domain.Media) error {
	sectionID := sql.NullString{String: m.SectionID, Valid: m.SectionID != ""}
	_, err := r.db.ExecContext(ctx,
		"UPDATE media SET section_id = $2, alt_text = $3, media_type = $4 WHERE id = $1",
		m.ID, sectionID, m.AltText, string(m.Type))
	return db.StoreError(err)
}

// Delete removes the media row. The underlying file is the handler's concern.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM media WHERE id = $1", id)
	return db.StoreError(err)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Media, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.StoreError(err)
	}
	defer rows.Close()

	var out []*domain.Media
	for rows.Next() {
		var m domain.Media
		var sectionID sql.NullString
		if err := rows.Scan(&m.ID, &sectionID, &m.UploaderID, &m.FileURL, &m.AltText, &m.Type); err != nil {
			return nil, db.StoreError(err)
		}
		m.SectionID = sectionID.String
		out = append(out, &m)
	}
	return out, db.StoreError(rows.Err())
}
