package post

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Ripple/internal/api/middleware"
	"Ripple/internal/core/identity"
	"Ripple/internal/core/posts"
)

// fakeService is a test double for posts.Service
type fakeService struct {
	createErr error
	listErr   error
	posts     []*posts.Post
	created   []posts.CreatePostRequest
}

func (s *fakeService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.CreatePostResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, req)
	return &posts.CreatePostResponse{ID: 1, Text: req.Text}, nil
}

func (s *fakeService) ListPosts(ctx context.Context) ([]*posts.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.posts, nil
}

func authedRequest(method, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/posts", nil)
	} else {
		req = httptest.NewRequest(method, "/api/posts", strings.NewReader(body))
	}
	ctx := middleware.SetTestIdentity(req.Context(), &identity.Identity{
		SubjectID: "subj-123",
		Email:     "a@x.com",
	})
	return req.WithContext(ctx)
}

func TestHandleCreate_Success(t *testing.T) {
	service := &fakeService{}
	handler := NewCreateHandler(service)

	req := authedRequest("POST", `{"username":"a@x.com","text":"hello"}`)
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp posts.CreatePostResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 1 || resp.Text != "hello" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if len(service.created) != 1 || service.created[0].Username != "a@x.com" {
		t.Errorf("service received wrong request: %+v", service.created)
	}
}

func TestHandleCreate_Unauthenticated(t *testing.T) {
	handler := NewCreateHandler(&fakeService{})

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"username":"a@x.com","text":"hello"}`))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestHandleCreate_InvalidBody(t *testing.T) {
	handler := NewCreateHandler(&fakeService{})

	req := authedRequest("POST", `{not json`)
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleCreate_ValidationError(t *testing.T) {
	service := &fakeService{createErr: posts.NewValidationError("text", "text content is required")}
	handler := NewCreateHandler(service)

	req := authedRequest("POST", `{"username":"a@x.com","text":""}`)
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ValidationError") {
		t.Errorf("expected ValidationError in body, got %s", w.Body.String())
	}
}

func TestHandleCreate_AuthorizationError(t *testing.T) {
	service := &fakeService{createErr: posts.ErrNotAuthorized}
	handler := NewCreateHandler(service)

	req := authedRequest("POST", `{"username":"b@x.com","text":"hello"}`)
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "AuthorizationError") {
		t.Errorf("expected AuthorizationError in body, got %s", w.Body.String())
	}
}

func TestHandleCreate_DownstreamFailure(t *testing.T) {
	service := &fakeService{createErr: fmt.Errorf("pq: connection refused")}
	handler := NewCreateHandler(service)

	req := authedRequest("POST", `{"username":"a@x.com","text":"hello"}`)
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	// Internal details must not leak
	if strings.Contains(w.Body.String(), "pq:") {
		t.Errorf("internal error leaked to client: %s", w.Body.String())
	}
}

func TestHandleList_Empty(t *testing.T) {
	handler := NewListHandler(&fakeService{})

	req := authedRequest("GET", "")
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}

func TestHandleList_ReturnsPosts(t *testing.T) {
	locator := "https://storage.googleapis.com/test-bucket/a@x.com-1-deadbeef.png"
	service := &fakeService{
		posts: []*posts.Post{
			{
				ID:              1,
				Username:        "a@x.com",
				Text:            "hello",
				AuthorSubjectID: "subj-123",
				CreatedAt:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:              2,
				Username:        "b@x.com",
				Text:            "with image",
				ImageURL:        &locator,
				AuthorSubjectID: "subj-456",
				CreatedAt:       time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC),
			},
		},
	}
	handler := NewListHandler(service)

	req := authedRequest("GET", "")
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(result))
	}

	first := result[0]
	if first["username"] != "a@x.com" || first["text"] != "hello" || first["userId"] != "subj-123" {
		t.Errorf("unexpected first post: %+v", first)
	}
	if _, present := first["imageUrl"]; present {
		t.Error("imageUrl must be absent for posts without an image")
	}
	if first["createdAt"] != "2024-03-01T12:00:00Z" {
		t.Errorf("unexpected createdAt: %v", first["createdAt"])
	}

	if result[1]["imageUrl"] != locator {
		t.Errorf("expected imageUrl %s, got %v", locator, result[1]["imageUrl"])
	}
}

func TestHandleList_Unauthenticated(t *testing.T) {
	handler := NewListHandler(&fakeService{})

	req := httptest.NewRequest("GET", "/api/posts", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestHandleList_DownstreamFailure(t *testing.T) {
	handler := NewListHandler(&fakeService{listErr: fmt.Errorf("record scan failed")})

	req := authedRequest("GET", "")
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}
