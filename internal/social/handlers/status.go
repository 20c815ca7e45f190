package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/api"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/httpserver"
	"github.com/SystAttic/TraversiumSocialService/internal/social/service"
)

// mapping of service error kinds to transport status. Anything not listed is
// unexpected: logged with context and answered as a generic bad request
// without leaking internals.
var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{service.ErrMediaNotFound, http.StatusNotFound, "MEDIA_NOT_FOUND"},
	{service.ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	{service.ErrLikeNotFound, http.StatusNotFound, "LIKE_NOT_FOUND"},
	{service.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
	{service.ErrDuplicateLike, http.StatusConflict, "DUPLICATE_LIKE"},
	{service.ErrContentRejected, http.StatusBadRequest, "CONTENT_REJECTED"},
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	rid := httpserver.RequestIDFromContext(r.Context())
	for _, m := range errorStatus {
		if errors.Is(err, m.kind) {
			log.Warn("request rejected",
				zap.String("code", m.code),
				zap.String("request_id", rid),
				zap.Error(err))
			api.WriteError(w, m.status, m.code, m.kind.Error(), rid, nil)
			return
		}
	}
	log.Error("unexpected service failure",
		zap.String("path", r.URL.Path),
		zap.String("request_id", rid),
		zap.Error(err))
	api.BadRequest(w, "UNEXPECTED", "request could not be processed", rid, nil)
}
