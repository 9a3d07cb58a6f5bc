package post

import (
	"encoding/json"
	"log"
	"net/http"

	"Ripple/internal/api/middleware"
	"Ripple/internal/core/posts"
)

// maxCreateBodySize bounds the request body. A 6MB image grows to 8MB as
// base64; the rest is headroom for the JSON envelope.
const maxCreateBodySize = 12 * 1024 * 1024

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
// Creates a new post for the authenticated caller, optionally persisting an
// attached base64-encoded image to the blob store first.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// Authentication is enforced by middleware; re-check so the handler is
	// safe even if mounted without it
	if middleware.GetIdentity(r) == nil {
		writeError(w, http.StatusUnauthorized, "InvalidCredential", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBodySize)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid request body")
		return
	}

	response, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Headers already sent; log only
		log.Printf("Failed to encode post creation response: %v", err)
	}
}
