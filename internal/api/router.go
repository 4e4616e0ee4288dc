package api

import (
	"log/slog"
	"net/http"

	"github.com/audiopanel/backend/internal/api/handlers"
	"github.com/audiopanel/backend/internal/api/middleware"
	"github.com/audiopanel/backend/internal/config"
	"github.com/audiopanel/backend/internal/service"
	"github.com/audiopanel/backend/internal/storage"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, store storage.Storage, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.FrontendURL))

	r.Get("/health", handlers.Health)

	// Uploaded covers are served directly only with the local backend;
	// cloud objects carry their own public URLs.
	if local, ok := store.(*storage.LocalStorage); ok {
		r.Handle("/uploads/*", http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(local.Dir()))))
	}

	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	productHandler := handlers.NewProductHandler(services.Product, cfg.MaxUploadSize)
	adminHandler := handlers.NewAdminHandler(services.Admin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(services.Auth))
				r.Get("/user", authHandler.CurrentUser)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.Authenticate(services.Auth))

			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{id}", productHandler.Get)
			r.Put("/{id}", productHandler.Update)
			r.Patch("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(services.Auth))
			r.Use(middleware.RequireAdmin)

			r.Get("/stats", adminHandler.Stats)
			r.Get("/users", adminHandler.ListUsers)
			r.Delete("/users/{id}", adminHandler.DeleteUser)
			r.Patch("/users/{id}/role", adminHandler.UpdateUserRole)
			r.Get("/products", adminHandler.ListProducts)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
		})
	})

	return r
}
