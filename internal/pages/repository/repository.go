package repository

import (
	"context"

	"pagecraft/backend/internal/pages/domain"
)

// Repository defines persistence for pages.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Page, error)
	ListByDomain(ctx context.Context, domainID string) ([]*domain.Summary, error)
	Create(ctx context.Context, p *domain.Page) error
	Update(ctx context.Context, p *domain.Page) error
	Delete(ctx context.Context, id string) error
}
