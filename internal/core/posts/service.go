package posts

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"Ripple/internal/api/middleware"
	"Ripple/internal/core/blobs"
	"Ripple/internal/core/identity"
)

type postService struct {
	repo      Repository
	verifier  identity.Verifier
	blobStore blobs.Store
}

// NewPostService creates a new post service
func NewPostService(repo Repository, verifier identity.Verifier, blobStore blobs.Store) Service {
	return &postService{
		repo:      repo,
		verifier:  verifier,
		blobStore: blobStore,
	}
}

// CreatePost creates a new post for the authenticated caller
// Flow:
// 1. Validate input (non-empty text, well-formed image payload if present)
// 2. Re-resolve the account's live email and compare against username
// 3. If an image was submitted: decode, persist to blob store, attach locator
// 4. Insert the post record (store assigns the id)
// 5. Return id/text/locator (author fields not echoed)
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*CreatePostResponse, error) {
	// 1. Validate text before any remote calls
	if strings.TrimSpace(req.Text) == "" {
		return nil, NewValidationError("text", "text content is required")
	}

	// 2. SECURITY: the identity comes from the request context (set by the
	// auth middleware), never from the request body
	ident := middleware.GetAuthenticatedIdentity(ctx)
	if ident == nil {
		return nil, fmt.Errorf("no authenticated identity in context - authentication required")
	}

	// 3. AUTHORIZATION: compare the supplied username against the account's
	// current email. This is a second, independent provider lookup - the
	// account record is authoritative, not the token claims, because the
	// two can diverge (e.g. email change after the token was issued).
	email, err := s.verifier.ResolveEmail(ctx, ident.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account email: %w", err)
	}
	if email != req.Username {
		log.Printf("[POST-CREATE] username mismatch: account=%s supplied=%s subject=%s",
			email, req.Username, ident.SubjectID)
		return nil, ErrNotAuthorized
	}

	now := time.Now().UTC()

	// 4. Optional image: decode and persist before the record write so a
	// failed upload never leaves a post referencing a nonexistent image.
	// The reverse leak (blob written, record insert fails) is accepted.
	var imageURL *string
	if req.ImageBase64 != nil {
		encoded := strings.TrimSpace(*req.ImageBase64)
		if encoded == "" {
			return nil, NewValidationError("imageBase64", "image data must be a non-empty base64 string")
		}

		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, NewValidationError("imageBase64", "image data is not valid base64")
		}

		name := blobs.ObjectName(req.Username, now)
		locator, err := s.blobStore.Put(ctx, name, data, blobs.ImageContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		imageURL = &locator
	}

	// 5. Insert the record; the store assigns the id
	post := &Post{
		Username:        req.Username,
		Text:            req.Text,
		ImageURL:        imageURL,
		AuthorSubjectID: ident.SubjectID,
		CreatedAt:       now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &CreatePostResponse{
		ID:       post.ID,
		Text:     post.Text,
		ImageURL: post.ImageURL,
	}, nil
}

// ListPosts returns the full posts collection.
// Any authenticated caller receives all posts; ordering follows the record
// store's scan order and is not guaranteed.
func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}
