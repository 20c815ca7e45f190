package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/api"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/auth"
	"github.com/SystAttic/TraversiumSocialService/internal/social/service"
)

type hasLikedResponse struct {
	MediaID int64 `json:"mediaId"`
	Liked   bool  `json:"liked"`
}

// LikeMedia handles POST /rest/v1/media/{mediaId}/likes
func LikeMedia(ls *service.LikeService, log *zap.Logger) http.HandlerFunc {
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

		like, err := ls.Like(r.Context(), caller, mediaID)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, like)
	}
}

// UnlikeMedia handles DELETE /rest/v1/media/{mediaId}/likes
func UnlikeMedia(ls *service.LikeService, log *zap.Logger) http.HandlerFunc {
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

		if err := ls.Unlike(r.Context(), caller, mediaID); err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetLikeCount handles GET /rest/v1/media/{mediaId}/likes/count.
// The endpoint is public; a bearer token only personalises isLiked.
func GetLikeCount(ls *service.LikeService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, ok := int64Param(r, "mediaId")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "mediaId must be a positive integer", "", nil)
			return
		}

		var currentUserID *int64
		if caller, ok := auth.IdentityFromContext(r.Context()); ok {
			currentUserID = &caller.UserID
		}

		count, err := ls.GetLikeCount(r.Context(), mediaID, currentUserID)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, count)
	}
}

// HasUserLiked handles GET /rest/v1/media/{mediaId}/likes/me
func HasUserLiked(ls *service.LikeService, log *zap.Logger) http.HandlerFunc {
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

		liked, err := ls.HasUserLiked(r.Context(), mediaID, caller.UserID)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, hasLikedResponse{MediaID: mediaID, Liked: liked})
	}
}
