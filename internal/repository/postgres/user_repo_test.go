package postgres_test

import (
	"context"
	"testing"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/repository/postgres"
	"github.com/audiopanel/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithEmail("lookup@example.com").Build(t, db)

	t.Run("found", func(t *testing.T) {
		got, err := repos.User.GetByEmail(ctx, "lookup@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repos.User.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	first, _ := testutil.NewUserBuilder().WithEmail("race@example.com").Build(t, db)

	dup := &domain.User{
		ID:           uuid.New(),
		Email:        first.Email,
		PasswordHash: first.PasswordHash,
		Name:         "Second Arrival",
		Role:         domain.RoleUser,
	}
	err := repos.User.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrEmailTaken, "unique index violation should surface as the domain error")
}

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)

	got, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = repos.User.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	testutil.NewProductBuilder(user).Build(t, db)

	require.NoError(t, repos.User.Delete(ctx, user.ID))

	_, err := repos.User.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	products, err := repos.Product.GetAllByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, products, "products should be deleted with their owner")

	t.Run("already deleted", func(t *testing.T) {
		err := repos.User.Delete(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_ListAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		testutil.NewUserBuilder().Build(t, db)
	}

	total, err := repos.User.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	users, err := repos.User.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	rest, err := repos.User.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
