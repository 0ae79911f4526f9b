package repository

import (
	"context"

	"pagecraft/backend/internal/sections/domain"
)

// Repository defines persistence for sections.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	ListByPage(ctx context.Context, pageID string) ([]*domain.Section, error)
	Create(ctx context.Context, s *domain.Section) error
	Update(ctx context.Context, s *domain.Section) error
	Delete(ctx context.Context, id string) error
}
