package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
)

// maxUploadSize bounds in-memory buffering of uploaded images.
const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var errInvalidImageType = errors.New("invalid image type")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// UserSummary is the public slice of a user embedded in article and comment
// responses. It deliberately excludes the email address.
type UserSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArticleSummary is the slice of an article embedded in comment responses.
type ArticleSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ArticleResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	ImageURL  *string         `json:"imageUrl"`
	User      UserSummary     `json:"user"`
	Category  CategorySummary `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string          `json:"id"`
	ArticleID string          `json:"articleId"`
	Content   string          `json:"content"`
	User      UserSummary     `json:"user"`
	Article   *ArticleSummary `json:"article,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toUserSummary(u domain.User) UserSummary {
	return UserSummary{
		ID:             u.ID.String(),
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:       a.ID.String(),
		UserID:   a.UserID.String(),
		Title:    a.Title,
		Content:  a.Content,
		ImageURL: a.ImageURL,
		User:     toUserSummary(a.User),
		Category: CategorySummary{
			ID:   a.Category.ID.String(),
			Name: a.Category.Name,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toArticleResponses(articles []*domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID.String(),
		ArticleID: c.ArticleID.String(),
		Content:   c.Content,
		User:      toUserSummary(c.User),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	// The article is only preloaded on single-comment lookups; list queries
	// already scope to one article.
	if c.Article.ID != uuid.Nil {
		resp.Article = &ArticleSummary{
			ID:    c.Article.ID.String(),
			Title: c.Article.Title,
		}
	}
	return resp
}

func toCommentResponses(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}

// parseID extracts and parses a UUID path parameter. It writes a 400 on
// failure and reports whether parsing succeeded.
func parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// imageFromForm reads an optional image file from an already-parsed
// multipart form. It returns nil when the field is absent.
func imageFromForm(r *http.Request, field string) (*service.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, errInvalidImageType
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadSize {
		return nil, errors.New("image exceeds maximum size")
	}

	return &service.ImageUpload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
	}, nil
}

// formValue returns a pointer to a form field value, or nil when the field
// was not submitted at all. This distinguishes "clear this field" from
// "leave it unchanged".
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
