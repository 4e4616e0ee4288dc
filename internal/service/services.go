package service

import (
	"github.com/audiopanel/backend/internal/config"
	"github.com/audiopanel/backend/internal/repository"
	"github.com/audiopanel/backend/internal/storage"
)

type Services struct {
	Auth    *AuthService
	Product *ProductService
	Admin   *AdminService
}

func NewServices(repos *repository.Repositories, store storage.Storage, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg),
		Product: NewProductService(repos.Product, store),
		Admin:   NewAdminService(repos.User, repos.Product, store),
	}
}
