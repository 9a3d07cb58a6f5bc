package posts

import (
	"time"
)

// Post represents a post record as stored in the record store.
// Posts are immutable once created; there is no update or delete path.
type Post struct {
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	Username        string    `json:"username" db:"username"`
	Text            string    `json:"text" db:"text_content"`
	AuthorSubjectID string    `json:"userId" db:"author_subject_id"`
	ImageURL        *string   `json:"imageUrl,omitempty" db:"image_url"`
	ID              int64     `json:"id" db:"id"`
}

// CreatePostRequest represents input for creating a new post.
// Matches the POST /api/posts body. ImageBase64 is a pointer so an absent
// image (valid, common) is distinguishable from a present-but-empty one
// (validation error).
type CreatePostRequest struct {
	ImageBase64 *string `json:"imageBase64,omitempty"`
	Username    string  `json:"username"`
	Text        string  `json:"text"`
}

// CreatePostResponse represents the response from creating a post.
// Author fields are not echoed back.
type CreatePostResponse struct {
	ImageURL *string `json:"imageUrl,omitempty"`
	Text     string  `json:"text"`
	ID       int64   `json:"id"`
}
