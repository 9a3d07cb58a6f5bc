package posts

import "context"

// Service defines the business logic interface for posts.
// Coordinates identity re-verification, optional blob persistence, and the
// record store.
type Service interface {
	// CreatePost validates and persists a new post for the authenticated
	// caller. The blob write (if an image was submitted) strictly precedes
	// the record write.
	CreatePost(ctx context.Context, req CreatePostRequest) (*CreatePostResponse, error)

	// ListPosts returns all posts. No filtering by caller and no defined
	// ordering - callers must not assume chronological order.
	ListPosts(ctx context.Context) ([]*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post and fills in the store-assigned ID
	Create(ctx context.Context, post *Post) error

	// List returns the full posts collection in store scan order
	List(ctx context.Context) ([]*Post, error)
}
