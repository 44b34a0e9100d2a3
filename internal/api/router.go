package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sndarsmle/server-NEWSAPP/internal/api/handlers"
	"github.com/sndarsmle/server-NEWSAPP/internal/api/middleware"
	"github.com/sndarsmle/server-NEWSAPP/internal/config"
	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User)
	articleHandler := handlers.NewArticleHandler(services.Article)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	commentHandler := handlers.NewCommentHandler(services.Comment)

	authenticated := middleware.Auth(services.Auth)
	anyRole := middleware.RequireRoles(domain.RoleReader, domain.RoleWriter, domain.RoleAdmin)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/token", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/{id}", userHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Put("/{id}", userHandler.Edit)
				r.Delete("/{id}", userHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(domain.RoleAdmin))
				r.Get("/", userHandler.List)
				r.Put("/role/{id}", userHandler.UpdateRole)
			})
		})

		// Category routes
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Get("/{id}", categoryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Use(middleware.RequireRoles(domain.RoleAdmin))
				r.Post("/", categoryHandler.Create)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})
		})

		// Article routes
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.List)
			r.Get("/{id}", articleHandler.Get)
			r.Get("/user/{userId}", articleHandler.ListByUser)
			r.Get("/category/{categoryId}", articleHandler.ListByCategory)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.With(middleware.RequireRoles(domain.RoleWriter)).Post("/", articleHandler.Create)
				r.With(middleware.RequireRoles(domain.RoleWriter)).Put("/{id}", articleHandler.Update)
				r.With(middleware.RequireRoles(domain.RoleWriter, domain.RoleAdmin)).Delete("/{id}", articleHandler.Delete)
			})
		})

		// Comment routes
		r.Route("/comments", func(r chi.Router) {
			r.Get("/article/{articleId}", commentHandler.ListByArticle)
			r.Get("/{id}", commentHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Use(anyRole)
				r.Post("/article/{articleId}", commentHandler.Create)
				r.Put("/{id}", commentHandler.Update)
				r.Delete("/{id}", commentHandler.Delete)
			})
		})
	})

	return r
}
