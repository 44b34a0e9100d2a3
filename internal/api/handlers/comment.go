package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sndarsmle/server-NEWSAPP/internal/api/middleware"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	articleID, ok := parseID(w, chi.URLParam(r, "articleId"))
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		http.Error(w, "Comment content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.Create(r.Context(), articleID, caller.ID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			http.Error(w, "Article not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [CommentHandler.Create] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.Update(r.Context(), id, caller.ID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			http.Error(w, "Comment not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotCommentOwner):
			http.Error(w, "You can only update your own comments", http.StatusForbidden)
		default:
			log.Printf("ERROR [CommentHandler.Update] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), id, caller); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			http.Error(w, "Comment not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotCommentOwner):
			http.Error(w, "You can only delete your own comments or be an admin", http.StatusForbidden)
		default:
			log.Printf("ERROR [CommentHandler.Delete] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CommentHandler) ListByArticle(w http.ResponseWriter, r *http.Request) {
	articleID, ok := parseID(w, chi.URLParam(r, "articleId"))
	if !ok {
		return
	}

	comments, err := h.commentService.GetByArticle(r.Context(), articleID)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			http.Error(w, "Article not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [CommentHandler.ListByArticle] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	comment, err := h.commentService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			http.Error(w, "Comment not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [CommentHandler.Get] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}
