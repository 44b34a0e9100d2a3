package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken *string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	GetByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Article, []*domain.Comment, error)
	GetAll(ctx context.Context) ([]*domain.Article, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error)
	GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error)
	CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	GetByArticleID(ctx context.Context, articleID uuid.UUID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User     UserRepository
	Article  ArticleRepository
	Category CategoryRepository
	Comment  CommentRepository
}
