package service

import (
	"github.com/sndarsmle/server-NEWSAPP/internal/config"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository"
	"github.com/sndarsmle/server-NEWSAPP/internal/storage"
	"github.com/sndarsmle/server-NEWSAPP/internal/token"
)

type Services struct {
	Auth     *AuthService
	User     *UserService
	Article  *ArticleService
	Category *CategoryService
	Comment  *CommentService
}

func NewServices(repos *repository.Repositories, tokens *token.Issuer, store storage.ObjectStore, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, tokens, cfg),
		User:     NewUserService(repos.User, store, cfg),
		Article:  NewArticleService(repos.Article, repos.Category, repos.User, store),
		Category: NewCategoryService(repos.Category, repos.Article),
		Comment:  NewCommentService(repos.Comment, repos.Article),
	}
}

// ImageUpload carries a file received as multipart form data, buffered in
// memory by the handler.
type ImageUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}
