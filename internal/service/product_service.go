package service

import (
	"context"
	"io"
	"time"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/logging"
	"github.com/audiopanel/backend/internal/repository"
	"github.com/audiopanel/backend/internal/storage"
	"github.com/google/uuid"
)

type ProductService struct {
	products repository.ProductRepository
	store    storage.Storage
}

func NewProductService(products repository.ProductRepository, store storage.Storage) *ProductService {
	return &ProductService{products: products, store: store}
}

// Upload is an uploaded file decoupled from the HTTP multipart machinery.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type ProductPage struct {
	Data       []*domain.Product `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type CreateProductInput struct {
	Name   string
	Artist string
	File   *Upload
}

// UpdateProductInput uses pointers so omitted fields are left untouched.
type UpdateProductInput struct {
	Name   *string
	Artist *string
	File   *Upload
}

func (s *ProductService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*ProductPage, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.products.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListByUserID(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Data:       products,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// Get returns ErrProductNotFound for records owned by someone else, so the
// existence of other tenants' products never leaks.
func (s *ProductService) Get(ctx context.Context, userID, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*domain.Product, error) {
	ref, err := s.store.Store(ctx, input.File.Reader, input.File.Size, input.File.ContentType, input.File.Filename)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:         uuid.New(),
		Name:       input.Name,
		Artist:     input.Artist,
		CoverImage: &ref,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		// The record never made it in; don't leave the file behind.
		s.cleanupFile(ctx, ref)
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Artist != nil {
		product.Artist = *input.Artist
	}

	var oldRef *string
	if input.File != nil {
		ref, err := s.store.Store(ctx, input.File.Reader, input.File.Size, input.File.ContentType, input.File.Filename)
		if err != nil {
			return nil, err
		}
		oldRef = product.CoverImage
		product.CoverImage = &ref
	}

	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		if input.File != nil && product.CoverImage != nil {
			s.cleanupFile(ctx, *product.CoverImage)
		}
		return nil, err
	}

	// The record now points at the new file; drop the superseded one.
	if oldRef != nil {
		s.cleanupFile(ctx, *oldRef)
	}

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.UserID != userID {
		return domain.ErrNotOwner
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	if product.CoverImage != nil {
		s.cleanupFile(ctx, *product.CoverImage)
	}

	return nil
}

// cleanupFile deletes a stored file best-effort. Storage failures are logged
// and swallowed; the database row is the source of truth.
func (s *ProductService) cleanupFile(ctx context.Context, ref string) {
	if err := s.store.Delete(ctx, ref); err != nil {
		logging.FromContext(ctx).Warn("failed to delete stored file", "ref", ref, "error", err)
	}
}
