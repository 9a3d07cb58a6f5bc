package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Ripple/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post and fills in the store-assigned id
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (
			username, text_content, image_url, author_subject_id, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
		RETURNING id
	`

	var imageURL sql.NullString
	if post.ImageURL != nil {
		imageURL.String = *post.ImageURL
		imageURL.Valid = true
	}

	err := r.db.QueryRowContext(
		ctx, query,
		post.Username, post.Text, imageURL, post.AuthorSubjectID, post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// List returns the full posts collection.
// Deliberately no ORDER BY: the contract exposes the store's scan order and
// callers must not assume chronological ordering.
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT id, username, text_content, image_url, author_subject_id, created_at
		FROM posts
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}
	defer rows.Close()

	var result []*posts.Post
	for rows.Next() {
		var post posts.Post
		var imageURL sql.NullString

		if err := rows.Scan(
			&post.ID, &post.Username, &post.Text, &imageURL,
			&post.AuthorSubjectID, &post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}

		if imageURL.Valid {
			post.ImageURL = &imageURL.String
		}

		result = append(result, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return result, nil
}
