// Package handlers holds the thin REST controllers. They parse the request,
// read the caller identity from context, call the service, and map error
// kinds to statuses; every decision beyond that lives in the service layer.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/api"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/auth"
	"github.com/SystAttic/TraversiumSocialService/internal/social/service"
)

// CreateComment handles POST /rest/v1/media/{mediaId}/comments
func CreateComment(cs *service.CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		mediaID, ok := int64Param(r, "mediaId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "mediaId must be a positive integer", "", nil)
			return
		}

		var req service.CreateCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", "", nil)
			return
		}

		created, err := cs.Create(r.Context(), caller, mediaID, req)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// UpdateComment handles PUT /rest/v1/comments/{commentId}
func UpdateComment(cs *service.CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		commentID, ok := int64Param(r, "commentId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "commentId must be a positive integer", "", nil)
			return
		}

		var req service.UpdateCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", "", nil)
			return
		}

		updated, err := cs.Update(r.Context(), caller, commentID, req)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, updated)
	}
}

// DeleteComment handles DELETE /rest/v1/comments/{commentId}
func DeleteComment(cs *service.CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		commentID, ok := int64Param(r, "commentId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "commentId must be a positive integer", "", nil)
			return
		}

		if err := cs.Delete(r.Context(), caller, commentID); err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetCommentsForMedia handles GET /rest/v1/media/{mediaId}/comments
func GetCommentsForMedia(cs *service.CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, ok := int64Param(r, "mediaId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "mediaId must be a positive integer", "", nil)
			return
		}

		var credential string
		if caller, ok := auth.IdentityFromContext(r.Context()); ok {
			credential = caller.Token
		}

		page, err := cs.ListForMedia(r.Context(), credential, mediaID, pageRequest(r))
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, page)
	}
}

// GetRepliesForComment handles GET /rest/v1/comments/{commentId}/replies
func GetRepliesForComment(cs *service.CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, ok := int64Param(r, "commentId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "commentId must be a positive integer", "", nil)
			return
		}

		page, err := cs.ListReplies(r.Context(), commentID, pageRequest(r))
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, page)
	}
}

// GetComment handles GET /rest/v1/comments/{commentId}
func GetComment(cs *service.CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, ok := int64Param(r, "commentId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "commentId must be a positive integer", "", nil)
			return
		}

		view, err := cs.GetByID(r.Context(), commentID)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view)
	}
}
