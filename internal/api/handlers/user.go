package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sndarsmle/server-NEWSAPP/internal/api/middleware"
	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [UserHandler.Get] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR [UserHandler.List] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Edit updates the caller's own profile from a multipart form. Present
// fields are applied; absent fields are left unchanged.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

	picture, err := imageFromForm(r, "profilePicture")
	if err != nil {
		http.Error(w, "Invalid profile picture: "+err.Error(), http.StatusBadRequest)
		return
	}

	input := service.EditUserInput{
		Username: formValue(r, "username"),
		Email:    formValue(r, "email"),
		FullName: formValue(r, "fullName"),
		Password: formValue(r, "password"),
		Picture:  picture,
	}

	user, err := h.userService.Edit(r.Context(), id, caller, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAccountOwner):
			http.Error(w, "You can only edit your own account", http.StatusForbidden)
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			log.Printf("ERROR [UserHandler.Edit] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id, caller); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotAccountOwner):
			http.Error(w, "You can only delete your own account or be an admin", http.StatusForbidden)
		default:
			log.Printf("ERROR [UserHandler.Delete] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Deleting your own account also ends the session.
	if caller.ID == id {
		clearRefreshCookie(w)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type UpdateRoleRequest struct {
	NewRole string `json:"newRole"`
}

type RoleResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateRole(r.Context(), id, domain.Role(req.NewRole), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			http.Error(w, "Invalid newRole: must be 'reader', 'writer' or 'admin'", http.StatusBadRequest)
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, service.ErrSelfDemotion):
			http.Error(w, "Admins cannot demote themselves to non-admin roles", http.StatusForbidden)
		default:
			log.Printf("ERROR [UserHandler.UpdateRole] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, RoleResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	})
}
