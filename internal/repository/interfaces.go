package repository

import (
	"context"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Owner-scoped queries, newest first.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Product, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	GetAllByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error)

	// Cross-tenant queries used by the admin surface.
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Product, error)
	CountGroupedByUser(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type Repositories struct {
	User    UserRepository
	Product ProductRepository
}
