package blobs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Store defines the interface for blob persistence.
// Implementations must durably store the bytes under the given name and
// return a publicly retrievable locator for them.
type Store interface {
	// Put uploads data under name with the given content type and returns
	// the public locator for the stored object.
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type httpStore struct {
	client        *http.Client
	endpoint      string
	bucket        string
	publicBaseURL string
	authToken     string
}

// NewHTTPStore creates a blob store backed by an object-storage media-upload
// endpoint. publicBaseURL is the base under which stored objects are publicly
// served; authToken is optional and sent as a bearer credential when set.
func NewHTTPStore(endpoint, bucket, publicBaseURL, authToken string) Store {
	return &httpStore{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint:      strings.TrimSuffix(endpoint, "/"),
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		authToken:     authToken,
	}
}

// Put uploads binary data to the bucket.
// Flow:
// 1. Validate inputs (non-empty name/data/contentType, size cap)
// 2. POST {endpoint}/upload/storage/v1/b/{bucket}/o?uploadType=media&name={name}
// 3. Return the public locator for the stored object
func (s *httpStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("object name cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("data cannot be empty")
	}
	if contentType == "" {
		return "", fmt.Errorf("contentType cannot be empty")
	}
	if len(data) > MaxBlobSize {
		return "", fmt.Errorf("blob size %d bytes exceeds maximum of %d bytes", len(data), MaxBlobSize)
	}
	if s.bucket == "" {
		return "", fmt.Errorf("blob store has no bucket configured")
	}

	uploadURL := fmt.Sprintf("%s/upload/storage/v1/b/%s/o?uploadType=media&name=%s",
		s.endpoint, url.PathEscape(s.bucket), url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob upload failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Warning: failed to close upload response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// Truncate the body so storage-service errors don't flood logs
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("blob store returned status %d: %s", resp.StatusCode, string(body))
	}

	locator := PublicURL(s.publicBaseURL, s.bucket, name)
	if locator == "" {
		return "", fmt.Errorf("blob store has no public base URL configured")
	}

	return locator, nil
}
