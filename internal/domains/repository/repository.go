package repository

import (
	"context"

	"pagecraft/backend/internal/domains/domain"
)

// Repository defines persistence for domains.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Domain, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Domain, error)
	ListAll(ctx context.Context) ([]*domain.Domain, error)
	Create(ctx context.Context, d *domain.Domain) error
	Update(ctx context.Context, d *domain.Domain) error
	Delete(ctx context.Context, id string) error
}
