package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/audiopanel/backend/internal/config"
	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/repository/postgres"
	"github.com/audiopanel/backend/internal/service"
	"github.com/google/uuid"
)

// createadmin bootstraps the first administrator account. If the email
// already belongs to a user, that user is promoted instead.
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 6 characters)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email <email> -password <password> [-name <name>]")
		os.Exit(2)
	}
	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer postgres.Close(db)

	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	existing, err := repos.User.GetByEmail(ctx, *email)
	switch {
	case err == nil:
		if existing.Role == domain.RoleAdmin {
			fmt.Printf("user %s is already an admin\n", existing.Email)
			return
		}
		existing.Role = domain.RoleAdmin
		if err := repos.User.Update(ctx, existing); err != nil {
			log.Fatalf("failed to promote user: %v", err)
		}
		fmt.Printf("promoted %s to admin\n", existing.Email)
	case errors.Is(err, domain.ErrUserNotFound):
		hash, err := service.HashPassword(*password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		user := &domain.User{
			ID:           uuid.New(),
			Email:        *email,
			PasswordHash: hash,
			Name:         *name,
			Role:         domain.RoleAdmin,
		}
		if err := repos.User.Create(ctx, user); err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		fmt.Printf("created admin %s\n", user.Email)
	default:
		log.Fatalf("failed to look up user: %v", err)
	}
}
