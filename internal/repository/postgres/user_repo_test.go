package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository/postgres"
	"github.com/sndarsmle/server-NEWSAPP/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "repouser",
				Email:        "repouser@example.com",
				PasswordHash: "hashedpassword",
				FullName:     "Repo User",
				Role:         domain.RoleReader,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate username",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "repouser", // Same as above
				Email:        "different@example.com",
				PasswordHash: "hashedpassword2",
				FullName:     "Repo User Two",
				Role:         domain.RoleReader,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "differentname",
				Email:        "repouser@example.com", // Same as first
				PasswordHash: "hashedpassword3",
				FullName:     "Repo User Three",
				Role:         domain.RoleReader,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByUsernameOrEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("lookup_user").
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  bool
	}{
		{
			name:     "matches on username",
			username: "lookup_user",
			email:    "other@example.com",
		},
		{
			name:     "matches on email",
			username: "other_user",
			email:    "lookup@example.com",
		},
		{
			name:     "matches neither",
			username: "nobody",
			email:    "nobody@example.com",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByUsernameOrEmail(ctx, tt.username, tt.email)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestUserRepository_RefreshTokenLifecycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	tokenValue := "opaque-refresh-token-value"

	// No user holds the token yet.
	_, err := repo.GetByRefreshToken(ctx, tokenValue)
	assert.Error(t, err)

	// Store it and look it up by value.
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, &tokenValue))
	got, err := repo.GetByRefreshToken(ctx, tokenValue)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Overwriting invalidates the old value.
	replacement := "replacement-token-value"
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, &replacement))
	_, err = repo.GetByRefreshToken(ctx, tokenValue)
	assert.Error(t, err)

	// Clearing removes the row from lookup entirely.
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, nil))
	_, err = repo.GetByRefreshToken(ctx, replacement)
	assert.Error(t, err)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
}

func TestUserRepository_UpdateRole(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.UpdateRole(ctx, user.ID, domain.RoleAdmin))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestUserRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.Error(t, err)
}
