package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the comment owner")
)

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

func (s *CommentService) Create(ctx context.Context, articleID uuid.UUID, callerID uuid.UUID, content string) (*domain.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		UserID:    callerID,
		ArticleID: articleID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Update edits a comment. Owner only; no admin bypass for edits.
func (s *CommentService) Update(ctx context.Context, commentID uuid.UUID, callerID uuid.UUID, content string) (*domain.Comment, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != callerID {
		return nil, ErrNotCommentOwner
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, commentID)
}

// Delete removes a comment. The owner may delete their own; an admin may
// delete anyone's.
func (s *CommentService) Delete(ctx context.Context, commentID uuid.UUID, caller *domain.User) error {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}

	if !caller.IsOwnerOrAdmin(comment.UserID) {
		return ErrNotCommentOwner
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}

func (s *CommentService) GetByArticle(ctx context.Context, articleID uuid.UUID) ([]*domain.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return s.commentRepo.GetByArticleID(ctx, articleID)
}

func (s *CommentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.getComment(ctx, id)
}

func (s *CommentService) getComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
