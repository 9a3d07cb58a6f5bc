package post

import (
	"encoding/json"
	"log"
	"net/http"

	"Ripple/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())

	case err == posts.ErrNotAuthorized:
		writeError(w, http.StatusForbidden, "AuthorizationError",
			"Username does not match the authenticated account")

	default:
		// Don't leak internal error details (store addresses, provider
		// responses) to clients
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "DownstreamFailure",
			"An internal error occurred")
	}
}
