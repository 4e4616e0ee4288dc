package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/audiopanel/backend/internal/api/middleware"
	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		password: "testpassword123",
		name:     fmt.Sprintf("Test User %s", suffix),
		role:     domain.RoleUser,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// AsAdmin marks the user as an administrator
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.role = domain.RoleAdmin
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hash, err := service.HashPassword(b.password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: hash,
		Name:         b.name,
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin creates the user and logs in via the API, returning the
// user together with the session cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Cookie) {
	t.Helper()

	user, password := b.Build(t, ts.DB)
	return user, Login(t, ts, user.Email, password)
}

// Login authenticates against the API and returns the auth cookie.
func Login(t *testing.T, ts *TestServer, email, password string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookieName {
			return c
		}
	}

	t.Fatal("login response has no token cookie")
	return nil
}

// ProductBuilder creates test products with a builder pattern
type ProductBuilder struct {
	name       string
	artist     string
	coverImage *string
	owner      *domain.User
}

// NewProductBuilder creates a new ProductBuilder with default values
func NewProductBuilder(owner *domain.User) *ProductBuilder {
	suffix := uuid.New().String()[:8]
	return &ProductBuilder{
		name:   fmt.Sprintf("Album %s", suffix),
		artist: fmt.Sprintf("Artist %s", suffix),
		owner:  owner,
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithArtist sets the artist
func (b *ProductBuilder) WithArtist(artist string) *ProductBuilder {
	b.artist = artist
	return b
}

// WithCoverImage sets the stored cover image reference
func (b *ProductBuilder) WithCoverImage(ref string) *ProductBuilder {
	b.coverImage = &ref
	return b
}

// Build creates the product in the database
func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       b.name,
		Artist:     b.artist,
		CoverImage: b.coverImage,
		UserID:     b.owner.ID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}
