package repository

import (
	"context"

	"pagecraft/backend/internal/seo/domain"
)

// Repository defines persistence for SEO records.
type Repository interface {
	GetByDomain(ctx context.Context, domainID string) (*domain.Record, error)
	// Upsert inserts the record or, if the domain already has one, replaces
	// its fields in place.
	Upsert(ctx context.Context, s *domain.Record) error
	Delete(ctx context.Context, domainID string) error
}
