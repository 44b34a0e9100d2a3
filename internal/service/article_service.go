package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository"
	"github.com/sndarsmle/server-NEWSAPP/internal/storage"
)

var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrNotArticleOwner    = errors.New("not the article owner")
	ErrWriterRoleRequired = errors.New("only writers can create articles")
)

type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	store        storage.ObjectStore
}

func NewArticleService(articleRepo repository.ArticleRepository, categoryRepo repository.CategoryRepository, userRepo repository.UserRepository, store storage.ObjectStore) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		store:        store,
	}
}

type CreateArticleInput struct {
	Title      string
	Content    string
	CategoryID uuid.UUID
	Image      *ImageUpload
}

func (s *ArticleService) Create(ctx context.Context, caller *domain.User, input CreateArticleInput) (*domain.Article, error) {
	// The route already requires the writer role; re-checked here so the
	// policy holds even if the service is called from elsewhere.
	if caller.Role != domain.RoleWriter {
		return nil, ErrWriterRoleRequired
	}

	if _, err := s.getCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	var imageURL *string
	if input.Image != nil {
		url, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	article := &domain.Article{
		ID:         uuid.New(),
		UserID:     caller.ID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Content:    input.Content,
		ImageURL:   imageURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, article.ID)
}

type UpdateArticleInput struct {
	Title      *string
	Content    *string
	CategoryID *uuid.UUID
	Image      *ImageUpload
}

// Update modifies an article. Only the owning writer may update; admins get
// no bypass for edits, unlike deletion.
func (s *ArticleService) Update(ctx context.Context, articleID uuid.UUID, callerID uuid.UUID, input UpdateArticleInput) (*domain.Article, error) {
	article, err := s.getArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if article.UserID != callerID {
		return nil, ErrNotArticleOwner
	}

	if input.CategoryID != nil {
		if _, err := s.getCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		article.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Content != nil {
		article.Content = *input.Content
	}

	if input.Image != nil {
		if err := s.deleteImage(ctx, article.ImageURL); err != nil {
			return nil, err
		}
		url, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		article.ImageURL = &url
	}

	article.UpdatedAt = time.Now()
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, articleID)
}

// Delete removes an article. The owner may delete their own; an admin may
// delete anyone's.
func (s *ArticleService) Delete(ctx context.Context, articleID uuid.UUID, caller *domain.User) error {
	article, err := s.getArticle(ctx, articleID)
	if err != nil {
		return err
	}

	if !caller.IsOwnerOrAdmin(article.UserID) {
		return ErrNotArticleOwner
	}

	if err := s.deleteImage(ctx, article.ImageURL); err != nil {
		return err
	}

	return s.articleRepo.Delete(ctx, article.ID)
}

func (s *ArticleService) GetAll(ctx context.Context) ([]*domain.Article, error) {
	return s.articleRepo.GetAll(ctx)
}

func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, []*domain.Comment, error) {
	article, comments, err := s.articleRepo.GetByIDWithComments(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrArticleNotFound
		}
		return nil, nil, err
	}
	return article, comments, nil
}

func (s *ArticleService) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.articleRepo.GetByUserID(ctx, userID)
}

func (s *ArticleService) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error) {
	if _, err := s.getCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByCategoryID(ctx, categoryID)
}

func (s *ArticleService) getArticle(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) getCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *ArticleService) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	key := storage.ArticleImageKey(image.Filename)
	return s.store.Upload(ctx, key, bytes.NewReader(image.Data), int64(len(image.Data)), image.ContentType)
}

// deleteImage removes a stored article image blob. A failure here surfaces
// as an error even when the database row was already written; the stale blob
// is an accepted inconsistency window.
func (s *ArticleService) deleteImage(ctx context.Context, imageURL *string) error {
	if imageURL == nil || *imageURL == "" {
		return nil
	}
	key, ok := s.store.KeyFromURL(*imageURL)
	if !ok {
		return nil
	}
	return s.store.Delete(ctx, key)
}
