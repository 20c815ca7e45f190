package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/auth"
	"github.com/SystAttic/TraversiumSocialService/internal/social/events"
	"github.com/SystAttic/TraversiumSocialService/internal/social/service"
	"github.com/SystAttic/TraversiumSocialService/internal/social/store"
)

// fixtures shared by comment and like handler tests.

type stubMedia struct {
	existing map[int64]bool
	owners   map[int64]string
}

func (s *stubMedia) MediaExists(_ context.Context, mediaID int64, _ string) bool {
	return s.existing[mediaID]
}

func (s *stubMedia) MediaOwner(_ context.Context, mediaID int64, _ string) (string, bool) {
	owner, ok := s.owners[mediaID]
	return owner, ok && owner != ""
}

type allowAll struct{}

func (allowAll) IsTextAllowed(context.Context, string) bool { return true }

type dropSink struct{}

func (dropSink) PublishNotification(context.Context, events.Notification) {}
func (dropSink) PublishAudit(context.Context, events.Audit)               {}

func newCommentService() (*service.CommentService, store.CommentStore) {
	comments := store.NewInMemoryCommentStore()
	media := &stubMedia{existing: map[int64]bool{100: true}, owners: map[int64]string{100: "owner1"}}
	svc := service.NewCommentService(comments, media, allowAll{}, dropSink{}, nil)
	return svc, comments
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func mustCreate(t *testing.T, svc *service.CommentService, externalID string, mediaID int64, content string) service.CommentView {
	t.Helper()
	caller := auth.Identity{UserID: auth.NumericUserID(externalID), ExternalID: externalID, Token: "token-" + externalID}
	view, err := svc.Create(context.Background(), caller, mediaID, service.CreateCommentRequest{Content: content})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return view
}

func mustReply(t *testing.T, svc *service.CommentService, externalID string, mediaID, parentID int64, content string) service.CommentView {
	t.Helper()
	caller := auth.Identity{UserID: auth.NumericUserID(externalID), ExternalID: externalID, Token: "token-" + externalID}
	view, err := svc.Create(context.Background(), caller, mediaID, service.CreateCommentRequest{Content: content, ParentID: &parentID})
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	return view
}

// setupReq builds a request with chi URL params and an optional caller bound
// to the context.
func setupReq(method, url, body string, params map[string]string, externalID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if externalID != "" {
		ctx = auth.WithIdentity(ctx, auth.Identity{
			UserID:     auth.NumericUserID(externalID),
			ExternalID: externalID,
			Token:      "token-" + externalID,
		})
	}
	return req.WithContext(ctx)
}

func TestCreateComment(t *testing.T) {
	svc, _ := newCommentService()
	handler := CreateComment(svc, zap.NewNop())

	req := setupReq(http.MethodPost, "/rest/v1/media/100/comments", `{"content":"hello world"}`,
		map[string]string{"mediaId": "100"}, "a1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var view service.CommentView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Content != "hello world" {
		t.Fatalf("expected content 'hello world', got %q", view.Content)
	}
	if view.AuthorExternalID != "a1" {
		t.Fatalf("expected author a1, got %q", view.AuthorExternalID)
	}
}

func TestCreateComment_Unauthorized(t *testing.T) {
	svc, _ := newCommentService()
	handler := CreateComment(svc, zap.NewNop())

	req := setupReq(http.MethodPost, "/rest/v1/media/100/comments", `{"content":"hello"}`,
		map[string]string{"mediaId": "100"}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestCreateComment_EmptyContent(t *testing.T) {
	svc, _ := newCommentService()
	handler := CreateComment(svc, zap.NewNop())

	req := setupReq(http.MethodPost, "/rest/v1/media/100/comments", `{"content":"  "}`,
		map[string]string{"mediaId": "100"}, "a1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateComment_InvalidMediaID(t *testing.T) {
	svc, _ := newCommentService()
	handler := CreateComment(svc, zap.NewNop())

	req := setupReq(http.MethodPost, "/rest/v1/media/abc/comments", `{"content":"hello"}`,
		map[string]string{"mediaId": "abc"}, "a1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateComment_MediaMissing(t *testing.T) {
	svc, _ := newCommentService()
	handler := CreateComment(svc, zap.NewNop())

	req := setupReq(http.MethodPost, "/rest/v1/media/999/comments", `{"content":"hello"}`,
		map[string]string{"mediaId": "999"}, "a1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	svc, _ := newCommentService()
	created := mustCreate(t, svc, "a1", 100, "original")

	handler := UpdateComment(svc, zap.NewNop())
	id := map[string]string{"commentId": itoa(created.ID)}

	req := setupReq(http.MethodPut, "/rest/v1/comments/"+itoa(created.ID), `{"content":"hacked"}`, id, "b2")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", rr.Code)
	}

	req = setupReq(http.MethodPut, "/rest/v1/comments/"+itoa(created.ID), `{"content":"updated"}`, id, "a1")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for author, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestDeleteComment(t *testing.T) {
	svc, _ := newCommentService()
	created := mustCreate(t, svc, "a1", 100, "will delete")

	handler := DeleteComment(svc, zap.NewNop())
	id := map[string]string{"commentId": itoa(created.ID)}

	req := setupReq(http.MethodDelete, "/rest/v1/comments/"+itoa(created.ID), "", id, "b2")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", rr.Code)
	}

	req = setupReq(http.MethodDelete, "/rest/v1/comments/"+itoa(created.ID), "", id, "a1")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for author, got %d: %s", rr.Code, rr.Body.String())
	}

	req = setupReq(http.MethodDelete, "/rest/v1/comments/"+itoa(created.ID), "", id, "a1")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", rr.Code)
	}
}

func TestGetCommentsForMedia(t *testing.T) {
	svc, _ := newCommentService()
	mustCreate(t, svc, "a1", 100, "first")
	mustCreate(t, svc, "b2", 100, "second")

	handler := GetCommentsForMedia(svc, zap.NewNop())
	req := setupReq(http.MethodGet, "/rest/v1/media/100/comments?page=0&size=10", "",
		map[string]string{"mediaId": "100"}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var page store.Page[service.CommentView]
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.TotalElements != 2 || len(page.Content) != 2 {
		t.Fatalf("expected 2 comments, got total %d len %d", page.TotalElements, len(page.Content))
	}
}

func TestGetRepliesForComment(t *testing.T) {
	svc, _ := newCommentService()
	root := mustCreate(t, svc, "a1", 100, "root")
	mustReply(t, svc, "b2", 100, root.ID, "reply")

	handler := GetRepliesForComment(svc, zap.NewNop())
	req := setupReq(http.MethodGet, "/rest/v1/comments/"+itoa(root.ID)+"/replies", "",
		map[string]string{"commentId": itoa(root.ID)}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var page store.Page[service.CommentView]
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected 1 reply, got %d", page.TotalElements)
	}
}

func TestGetComment_NotFound(t *testing.T) {
	svc, _ := newCommentService()
	handler := GetComment(svc, zap.NewNop())

	req := setupReq(http.MethodGet, "/rest/v1/comments/4242", "",
		map[string]string{"commentId": "4242"}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
