package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sndarsmle/server-NEWSAPP/internal/api/middleware"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ArticleDetailResponse is the single-article view including its comments.
type ArticleDetailResponse struct {
	ArticleResponse
	Comments []CommentResponse `json:"comments"`
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	categoryIDRaw := r.FormValue("categoryId")
	if title == "" || content == "" || categoryIDRaw == "" {
		http.Error(w, "Title, content and category ID are required", http.StatusBadRequest)
		return
	}

	categoryID, err := uuid.Parse(categoryIDRaw)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	image, err := imageFromForm(r, "imageUrl")
	if err != nil {
		http.Error(w, "Invalid image: "+err.Error(), http.StatusBadRequest)
		return
	}

	article, err := h.articleService.Create(r.Context(), caller, service.CreateArticleInput{
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		Image:      image,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWriterRoleRequired):
			http.Error(w, "Only writers can create articles", http.StatusForbidden)
		case errors.Is(err, service.ErrCategoryNotFound):
			http.Error(w, "Category not found", http.StatusNotFound)
		default:
			log.Printf("ERROR [ArticleHandler.Create] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toArticleResponse(article))
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	input := service.UpdateArticleInput{
		Title:   formValue(r, "title"),
		Content: formValue(r, "content"),
	}

	if raw := formValue(r, "categoryId"); raw != nil {
		categoryID, err := uuid.Parse(*raw)
		if err != nil {
			http.Error(w, "Invalid category ID", http.StatusBadRequest)
			return
		}
		input.CategoryID = &categoryID
	}

	image, err := imageFromForm(r, "imageUrl")
	if err != nil {
		http.Error(w, "Invalid image: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.Image = image

	article, err := h.articleService.Update(r.Context(), id, caller.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			http.Error(w, "Article not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotArticleOwner):
			http.Error(w, "You can only update your own articles", http.StatusForbidden)
		case errors.Is(err, service.ErrCategoryNotFound):
			http.Error(w, "Category not found", http.StatusNotFound)
		default:
			log.Printf("ERROR [ArticleHandler.Update] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.articleService.Delete(r.Context(), id, caller); err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			http.Error(w, "Article not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotArticleOwner):
			http.Error(w, "You can only delete your own articles or be an admin", http.StatusForbidden)
		default:
			log.Printf("ERROR [ArticleHandler.Delete] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR [ArticleHandler.List] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponses(articles))
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	article, comments, err := h.articleService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			http.Error(w, "Article not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ArticleHandler.Get] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ArticleDetailResponse{
		ArticleResponse: toArticleResponse(article),
		Comments:        toCommentResponses(comments),
	})
}

func (h *ArticleHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	articles, err := h.articleService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ArticleHandler.ListByUser] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponses(articles))
}

func (h *ArticleHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseID(w, chi.URLParam(r, "categoryId"))
	if !ok {
		return
	}

	articles, err := h.articleService.GetByCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ArticleHandler.ListByCategory] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponses(articles))
}
