package repository

import (
	"context"

	"pagecraft/backend/internal/audit/domain"
)

// Repository defines persistence for audit entries.
type Repository interface {
	Create(ctx context.Context, e *domain.Entry) error
	ListByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.Entry, error)
}
