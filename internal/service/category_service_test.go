package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository/postgres"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
	"github.com/sndarsmle/server-NEWSAPP/internal/testutil"
)

func TestCategoryService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	categoryService := service.NewCategoryService(repos.Category, repos.Article)
	ctx := context.Background()

	t.Run("name is normalized to lowercase", func(t *testing.T) {
		category, err := categoryService.Create(ctx, "  Technology ")
		require.NoError(t, err)
		assert.Equal(t, "technology", category.Name)
	})

	t.Run("duplicate differs only by case", func(t *testing.T) {
		_, err := categoryService.Create(ctx, "TECHNOLOGY")
		assert.ErrorIs(t, err, service.ErrCategoryExists)
	})

	t.Run("distinct name succeeds", func(t *testing.T) {
		category, err := categoryService.Create(ctx, "sports")
		require.NoError(t, err)
		assert.Equal(t, "sports", category.Name)
	})
}

func TestCategoryService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	categoryService := service.NewCategoryService(repos.Category, repos.Article)
	ctx := context.Background()

	first := testutil.NewCategoryBuilder().WithName("politics").Build(t, testDB.DB)
	testutil.NewCategoryBuilder().WithName("culture").Build(t, testDB.DB)

	t.Run("rename", func(t *testing.T) {
		got, err := categoryService.Update(ctx, first.ID, "World Politics")
		require.NoError(t, err)
		assert.Equal(t, "world politics", got.Name)
	})

	t.Run("rename onto an existing name", func(t *testing.T) {
		_, err := categoryService.Update(ctx, first.ID, "Culture")
		assert.ErrorIs(t, err, service.ErrCategoryExists)
	})

	t.Run("keeping the same name is not a conflict", func(t *testing.T) {
		got, err := categoryService.Update(ctx, first.ID, "world politics")
		require.NoError(t, err)
		assert.Equal(t, "world politics", got.Name)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := categoryService.Update(ctx, uuid.New(), "anything")
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	categoryService := service.NewCategoryService(repos.Category, repos.Article)
	ctx := context.Background()

	writer, _ := testutil.NewUserBuilder().WithRole(domain.RoleWriter).Build(t, testDB.DB)
	category := testutil.NewCategoryBuilder().Build(t, testDB.DB)
	article := testutil.NewArticleBuilder(writer, category).Build(t, testDB.DB)

	t.Run("blocked while articles reference it", func(t *testing.T) {
		err := categoryService.Delete(ctx, category.ID)
		assert.ErrorIs(t, err, service.ErrCategoryInUse)
	})

	t.Run("succeeds once the articles are gone", func(t *testing.T) {
		require.NoError(t, repos.Article.Delete(ctx, article.ID))

		require.NoError(t, categoryService.Delete(ctx, category.ID))
		_, err := categoryService.GetByID(ctx, category.ID)
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	})

	t.Run("missing category", func(t *testing.T) {
		err := categoryService.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	})
}

func TestCategoryService_CreateStoreUnavailable(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	categoryService := service.NewCategoryService(repos.Category, repos.Article)

	sqlDB, err := testDB.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// The duplicate-name lookup failing is not the same as the name being
	// free.
	_, err = categoryService.Create(context.Background(), "technology")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCategoryExists)
}
