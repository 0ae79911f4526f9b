package repository

import (
	"context"

	"pagecraft/backend/internal/media/domain"
)

// Repository defines persistence for media items.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Media, error)
	ListBySection(ctx context.Context, sectionID string) ([]*domain.Media, error)
	ListByUploader(ctx context.Context, uploaderID string) ([]*domain.Media, error)
	// ListImagesByDomain returns the domain's image media across all of its
	// pages and sections. Backs the public gallery endpoint.
	ListImagesByDomain(ctx context.Context, domainID string) ([]*domain.Media, error)
	Create(ctx context.Context, m *domain.Media) error
	Update(ctx context.Context, m *domain.Media) error
	Delete(ctx context.Context, id string) error
}
