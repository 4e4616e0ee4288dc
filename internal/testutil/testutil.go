package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/audiopanel/backend/internal/api"
	"github.com/audiopanel/backend/internal/config"
	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/logging"
	"github.com/audiopanel/backend/internal/repository"
	repoPostgres "github.com/audiopanel/backend/internal/repository/postgres"
	"github.com/audiopanel/backend/internal/service"
	"github.com/audiopanel/backend/internal/storage"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory database with migrations applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second pooled connection would see an empty :memory: database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Product{}); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// TestConfig returns a configuration suitable for testing
func TestConfig(t *testing.T) *config.Config {
	return &config.Config{
		Port:                "0",
		Environment:         "test",
		JWTSecret:           "test-jwt-secret-key-for-testing-only",
		TokenExpirationDays: 1,
		FrontendURL:         "http://localhost:3000",
		UploadDir:           t.TempDir(),
		MaxUploadSize:       5 << 20,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Repos    *repository.Repositories
	Services *service.Services
	Storage  storage.Storage
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := NewTestDB(t)
	cfg := TestConfig(t)

	repos := repoPostgres.NewRepositories(db)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		t.Fatalf("failed to create local storage: %v", err)
	}

	services := service.NewServices(repos, store, cfg)
	router := api.NewRouter(services, store, cfg, logging.New(cfg.Environment))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       db,
		Repos:    repos,
		Services: services,
		Storage:  store,
		Config:   cfg,
	}
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}
