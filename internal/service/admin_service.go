package service

import (
	"context"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/logging"
	"github.com/audiopanel/backend/internal/repository"
	"github.com/audiopanel/backend/internal/storage"
	"github.com/google/uuid"
)

const recentProductsLimit = 5

// AdminService exposes cross-tenant variants of the user and product
// operations. Authorization is the router's job (RequireAdmin); nothing here
// checks roles.
type AdminService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	store    storage.Storage
}

func NewAdminService(users repository.UserRepository, products repository.ProductRepository, store storage.Storage) *AdminService {
	return &AdminService{users: users, products: products, store: store}
}

type Stats struct {
	TotalUsers     int64             `json:"totalUsers"`
	TotalProducts  int64             `json:"totalProducts"`
	RecentProducts []*domain.Product `json:"recentProducts"`
}

type UserWithCount struct {
	*domain.User
	ProductCount int64 `json:"productCount"`
}

type UserPage struct {
	Data       []*UserWithCount `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.products.ListRecent(ctx, recentProductsLimit)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:     totalUsers,
		TotalProducts:  totalProducts,
		RecentProducts: recent,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	counts := map[uuid.UUID]int64{}
	if len(ids) > 0 {
		counts, err = s.products.CountGroupedByUser(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	data := make([]*UserWithCount, len(users))
	for i, u := range users {
		data[i] = &UserWithCount{User: u, ProductCount: counts[u.ID]}
	}

	return &UserPage{
		Data:       data,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// DeleteUser removes the user and, through the cascade, all their products.
// Stored image files are deleted afterwards, best-effort.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	products, err := s.products.GetAllByUserID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	for _, p := range products {
		if p.CoverImage != nil {
			s.cleanupFile(ctx, *p.CoverImage)
		}
	}

	return nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AdminService) ListProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Data:       products,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if product.CoverImage != nil {
		s.cleanupFile(ctx, *product.CoverImage)
	}

	return nil
}

func (s *AdminService) cleanupFile(ctx context.Context, ref string) {
	if err := s.store.Delete(ctx, ref); err != nil {
		logging.FromContext(ctx).Warn("failed to delete stored file", "ref", ref, "error", err)
	}
}
