package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
)

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *articleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	var article domain.Article
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		First(&article, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Article, []*domain.Comment, error) {
	article, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var comments []*domain.Comment
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ?", id).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, nil, err
	}

	return article, comments, nil
}

func (r *articleRepository) GetAll(ctx context.Context) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Article{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// Omit associations so a save never touches the preloaded user/category rows.
func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Article{}, "id = ?", id).Error
}
