package post

import (
	"encoding/json"
	"log"
	"net/http"

	"Ripple/internal/api/middleware"
	"Ripple/internal/core/posts"
)

// ListHandler handles post listing requests
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList handles GET /api/posts
// Returns all posts to any authenticated caller. Ordering follows the record
// store's scan order and is not guaranteed.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r) == nil {
		writeError(w, http.StatusUnauthorized, "InvalidCredential", "Authentication required")
		return
	}

	result, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// An empty store serializes as [], not null
	if result == nil {
		result = []*posts.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode post list response: %v", err)
	}
}
