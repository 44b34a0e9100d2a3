package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category with this name already exists")
	ErrCategoryInUse    = errors.New("category is referenced by articles and cannot be deleted")
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	articleRepo  repository.ArticleRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, articleRepo repository.ArticleRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		articleRepo:  articleRepo,
	}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = normalizeCategoryName(name)

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = normalizeCategoryName(name)

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != category.ID {
		return nil, ErrCategoryExists
	}

	category.Name = name
	category.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category. Deletion is blocked while any article still
// references it; those articles must be reassigned or deleted first.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.articleRepo.CountByCategoryID(ctx, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}

func (s *CategoryService) GetAll(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Names are stored lowercase so uniqueness is case-insensitive.
func normalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
