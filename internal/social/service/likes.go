package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/auth"
	"github.com/SystAttic/TraversiumSocialService/internal/social/cache"
	"github.com/SystAttic/TraversiumSocialService/internal/social/events"
	"github.com/SystAttic/TraversiumSocialService/internal/social/store"
)

// LikeCount is the read model for a media item's likes.
type LikeCount struct {
	MediaID   int64 `json:"mediaId"`
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}

// LikeService owns the like lifecycle: (user, media) uniqueness, counting,
// and the notification/audit events derived from each mutation.
type LikeService struct {
	likes  store.LikeStore
	media  MediaOracle
	sink   events.Sink
	counts *cache.LikeCountCache
	log    *zap.Logger
}

// NewLikeService wires the like service. counts may be nil to run uncached.
func NewLikeService(likes store.LikeStore, media MediaOracle, sink events.Sink, counts *cache.LikeCountCache, log *zap.Logger) *LikeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LikeService{likes: likes, media: media, sink: sink, counts: counts, log: log}
}

// Like records that the caller liked a media item. A second like of the same
// pair fails with ErrDuplicateLike: the pre-check catches the common case and
// the store's uniqueness constraint backstops concurrent requests.
func (s *LikeService) Like(ctx context.Context, caller auth.Identity, mediaID int64) (store.Like, error) {
	exists, err := s.likes.ExistsByUserAndMedia(ctx, caller.UserID, mediaID)
	if err != nil {
		return store.Like{}, fmt.Errorf("check like for media %d: %w", mediaID, err)
	}
	if exists {
		return store.Like{}, fmt.Errorf("media %d: %w", mediaID, ErrDuplicateLike)
	}

	created, err := s.likes.Create(ctx, store.Like{UserID: caller.UserID, MediaID: mediaID})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return store.Like{}, fmt.Errorf("media %d: %w", mediaID, ErrDuplicateLike)
		}
		return store.Like{}, fmt.Errorf("create like for media %d: %w", mediaID, err)
	}

	s.counts.Invalidate(ctx, mediaID)
	s.notifyLiked(ctx, caller, created)
	s.audit(ctx, caller.ExternalID, events.AuditLikeCreated, created.ID, mediaID)

	s.log.Info("media liked",
		zap.Int64("like_id", created.ID),
		zap.Int64("media_id", mediaID),
		zap.Int64("user_id", caller.UserID))
	return created, nil
}

// Unlike removes the caller's like from a media item.
func (s *LikeService) Unlike(ctx context.Context, caller auth.Identity, mediaID int64) error {
	like, err := s.likes.FindByUserAndMedia(ctx, caller.UserID, mediaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("media %d: %w", mediaID, ErrLikeNotFound)
		}
		return fmt.Errorf("find like for media %d: %w", mediaID, err)
	}

	if err := s.likes.Delete(ctx, like.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("media %d: %w", mediaID, ErrLikeNotFound)
		}
		return fmt.Errorf("delete like %d: %w", like.ID, err)
	}

	s.counts.Invalidate(ctx, mediaID)
	s.audit(ctx, caller.ExternalID, events.AuditLikeDeleted, like.ID, mediaID)

	s.log.Info("media unliked",
		zap.Int64("like_id", like.ID),
		zap.Int64("media_id", mediaID),
		zap.Int64("user_id", caller.UserID))
	return nil
}

// GetLikeCount returns the media's like total and whether the current user,
// if any, has liked it. Anonymous callers get isLiked=false.
func (s *LikeService) GetLikeCount(ctx context.Context, mediaID int64, currentUserID *int64) (LikeCount, error) {
	count, cached := s.counts.Get(ctx, mediaID)
	if !cached {
		var err error
		count, err = s.likes.CountByMedia(ctx, mediaID)
		if err != nil {
			return LikeCount{}, fmt.Errorf("count likes for media %d: %w", mediaID, err)
		}
		s.counts.Set(ctx, mediaID, count)
	}

	isLiked := false
	if currentUserID != nil {
		liked, err := s.likes.ExistsByUserAndMedia(ctx, *currentUserID, mediaID)
		if err != nil {
			return LikeCount{}, fmt.Errorf("check like for media %d: %w", mediaID, err)
		}
		isLiked = liked
	}

	return LikeCount{MediaID: mediaID, LikeCount: count, IsLiked: isLiked}, nil
}

// HasUserLiked is a pure existence check.
func (s *LikeService) HasUserLiked(ctx context.Context, mediaID, userID int64) (bool, error) {
	liked, err := s.likes.ExistsByUserAndMedia(ctx, userID, mediaID)
	if err != nil {
		return false, fmt.Errorf("check like for media %d: %w", mediaID, err)
	}
	return liked, nil
}

// notifyLiked targets the media owner. An unresolved owner skips the
// notification; the like itself already succeeded.
func (s *LikeService) notifyLiked(ctx context.Context, caller auth.Identity, like store.Like) {
	owner, ok := s.media.MediaOwner(ctx, like.MediaID, caller.Token)
	if !ok {
		s.log.Warn("like notification skipped, media owner unresolved",
			zap.Int64("like_id", like.ID), zap.Int64("media_id", like.MediaID))
		return
	}

	mediaID := like.MediaID
	s.sink.PublishNotification(ctx, events.Notification{
		SenderExternalID:    caller.ExternalID,
		ReceiverExternalIDs: []string{owner},
		MediaID:             &mediaID,
		Action:              events.ActionLike,
	})
}

func (s *LikeService) audit(ctx context.Context, actorExternalID, action string, likeID, mediaID int64) {
	id := likeID
	s.sink.PublishAudit(ctx, events.Audit{
		ActorExternalID: actorExternalID,
		ActivityType:    events.ActivitySocial,
		Action:          action,
		EntityType:      events.EntityLike,
		EntityID:        &id,
		Metadata: map[string]any{
			"likeId":     likeID,
			"mediaId":    mediaID,
			"entityType": events.EntityLike,
		},
	})
}
