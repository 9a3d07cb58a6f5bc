package routes

import (
	"Ripple/internal/api/handlers/post"
	"Ripple/internal/api/middleware"
	"Ripple/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the post endpoints on the router.
// Both endpoints require bearer authentication; authorization beyond "must
// be authenticated" happens in the service layer.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)

	// POST /api/posts - submit a post, optionally carrying one image
	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)

	// GET /api/posts - full unordered snapshot of all posts
	r.With(authMiddleware.RequireAuth).Get("/api/posts", listHandler.HandleList)
}
