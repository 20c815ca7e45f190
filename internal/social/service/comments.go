package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/auth"
	"github.com/SystAttic/TraversiumSocialService/internal/social/events"
	"github.com/SystAttic/TraversiumSocialService/internal/social/store"
)

// CommentView is a comment annotated with its live reply count.
type CommentView struct {
	store.Comment
	ReplyCount int64 `json:"replyCount"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId,omitempty"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// CommentService owns the comment lifecycle: threading, authorization,
// moderation gating, media existence checks, and the notification/audit
// events derived from each mutation.
type CommentService struct {
	comments   store.CommentStore
	media      MediaOracle
	moderation ModerationOracle
	sink       events.Sink
	log        *zap.Logger
}

func NewCommentService(comments store.CommentStore, media MediaOracle, moderation ModerationOracle, sink events.Sink, log *zap.Logger) *CommentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommentService{
		comments:   comments,
		media:      media,
		moderation: moderation,
		sink:       sink,
		log:        log,
	}
}

// Create persists a new comment on a media item. Existence and moderation
// checks gate the write; the notification and audit events go out only after
// the row is committed.
func (s *CommentService) Create(ctx context.Context, caller auth.Identity, mediaID int64, req CreateCommentRequest) (CommentView, error) {
	if !s.media.MediaExists(ctx, mediaID, caller.Token) {
		return CommentView{}, fmt.Errorf("media %d does not exist: %w", mediaID, ErrMediaNotFound)
	}

	if !s.moderation.IsTextAllowed(ctx, req.Content) {
		return CommentView{}, fmt.Errorf("comment on media %d: %w", mediaID, ErrContentRejected)
	}

	var parent *store.Comment
	if req.ParentID != nil {
		p, err := s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return CommentView{}, fmt.Errorf("parent comment %d: %w", *req.ParentID, ErrCommentNotFound)
			}
			return CommentView{}, fmt.Errorf("load parent comment %d: %w", *req.ParentID, err)
		}
		parent = &p
	}

	created, err := s.comments.Create(ctx, store.Comment{
		Content:          req.Content,
		AuthorID:         caller.UserID,
		AuthorExternalID: caller.ExternalID,
		MediaID:          mediaID,
		ParentID:         req.ParentID,
	})
	if err != nil {
		return CommentView{}, fmt.Errorf("create comment on media %d: %w", mediaID, err)
	}

	s.notifyCreated(ctx, created, parent, caller.Token)
	s.audit(ctx, caller.ExternalID, events.AuditCommentCreated, created.ID, mediaID)

	s.log.Info("comment created",
		zap.Int64("comment_id", created.ID),
		zap.Int64("media_id", mediaID),
		zap.Int64("user_id", caller.UserID))

	return CommentView{Comment: created, ReplyCount: 0}, nil
}

// Update replaces the comment body. Only the author may update, and the new
// body passes moderation before anything is mutated.
func (s *CommentService) Update(ctx context.Context, caller auth.Identity, commentID int64, req UpdateCommentRequest) (CommentView, error) {
	comment, err := s.load(ctx, commentID)
	if err != nil {
		return CommentView{}, err
	}
	if comment.AuthorID != caller.UserID {
		return CommentView{}, fmt.Errorf("update comment %d: %w", commentID, ErrUnauthorized)
	}

	if !s.moderation.IsTextAllowed(ctx, req.Content) {
		return CommentView{}, fmt.Errorf("update comment %d: %w", commentID, ErrContentRejected)
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CommentView{}, fmt.Errorf("comment %d: %w", commentID, ErrCommentNotFound)
		}
		return CommentView{}, fmt.Errorf("update comment %d: %w", commentID, err)
	}

	s.audit(ctx, caller.ExternalID, events.AuditCommentUpdated, commentID, comment.MediaID)

	s.log.Info("comment updated",
		zap.Int64("comment_id", commentID),
		zap.Int64("user_id", caller.UserID))

	return s.annotate(ctx, updated)
}

// Delete removes the comment row. Replies are intentionally left in place;
// they stay addressable by id with the thread root gone.
func (s *CommentService) Delete(ctx context.Context, caller auth.Identity, commentID int64) error {
	comment, err := s.load(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != caller.UserID {
		return fmt.Errorf("delete comment %d: %w", commentID, ErrUnauthorized)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, ErrCommentNotFound)
		}
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}

	s.audit(ctx, caller.ExternalID, events.AuditCommentDeleted, commentID, comment.MediaID)

	s.log.Info("comment deleted",
		zap.Int64("comment_id", commentID),
		zap.Int64("user_id", caller.UserID))
	return nil
}

// ListForMedia returns root comments for a media item. The media existence
// check runs first, with whatever credential the caller presented.
func (s *CommentService) ListForMedia(ctx context.Context, credential string, mediaID int64, req store.PageRequest) (store.Page[CommentView], error) {
	if !s.media.MediaExists(ctx, mediaID, credential) {
		return store.Page[CommentView]{}, fmt.Errorf("media %d does not exist: %w", mediaID, ErrMediaNotFound)
	}

	roots, total, err := s.comments.ListRoots(ctx, mediaID, req)
	if err != nil {
		return store.Page[CommentView]{}, fmt.Errorf("list comments for media %d: %w", mediaID, err)
	}
	views, err := s.annotateAll(ctx, roots)
	if err != nil {
		return store.Page[CommentView]{}, err
	}
	return store.NewPage(views, req, total), nil
}

// ListReplies returns the direct replies of a comment.
func (s *CommentService) ListReplies(ctx context.Context, parentID int64, req store.PageRequest) (store.Page[CommentView], error) {
	if _, err := s.load(ctx, parentID); err != nil {
		return store.Page[CommentView]{}, err
	}

	replies, total, err := s.comments.ListReplies(ctx, parentID, req)
	if err != nil {
		return store.Page[CommentView]{}, fmt.Errorf("list replies of comment %d: %w", parentID, err)
	}
	views, err := s.annotateAll(ctx, replies)
	if err != nil {
		return store.Page[CommentView]{}, err
	}
	return store.NewPage(views, req, total), nil
}

// GetByID returns a single comment. Reads are public to any caller.
func (s *CommentService) GetByID(ctx context.Context, commentID int64) (CommentView, error) {
	comment, err := s.load(ctx, commentID)
	if err != nil {
		return CommentView{}, err
	}
	return s.annotate(ctx, comment)
}

func (s *CommentService) load(ctx context.Context, commentID int64) (store.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Comment{}, fmt.Errorf("comment %d: %w", commentID, ErrCommentNotFound)
		}
		return store.Comment{}, fmt.Errorf("load comment %d: %w", commentID, err)
	}
	return comment, nil
}

func (s *CommentService) annotate(ctx context.Context, c store.Comment) (CommentView, error) {
	n, err := s.comments.CountReplies(ctx, c.ID)
	if err != nil {
		return CommentView{}, fmt.Errorf("count replies of comment %d: %w", c.ID, err)
	}
	return CommentView{Comment: c, ReplyCount: n}, nil
}

func (s *CommentService) annotateAll(ctx context.Context, comments []store.Comment) ([]CommentView, error) {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		v, err := s.annotate(ctx, c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// notifyCreated resolves the notification target: the parent author for a
// reply, the media owner otherwise. When the owner cannot be resolved the
// notification is skipped; no placeholder identity is synthesized.
func (s *CommentService) notifyCreated(ctx context.Context, c store.Comment, parent *store.Comment, credential string) {
	var receiver, action string
	if parent != nil {
		receiver, action = parent.AuthorExternalID, events.ActionReply
	} else {
		owner, ok := s.media.MediaOwner(ctx, c.MediaID, credential)
		if !ok {
			s.log.Warn("comment notification skipped, media owner unresolved",
				zap.Int64("comment_id", c.ID), zap.Int64("media_id", c.MediaID))
			return
		}
		receiver, action = owner, events.ActionAdd
	}

	commentID := c.ID
	mediaID := c.MediaID
	s.sink.PublishNotification(ctx, events.Notification{
		SenderExternalID:    c.AuthorExternalID,
		ReceiverExternalIDs: []string{receiver},
		CommentID:           &commentID,
		MediaID:             &mediaID,
		Action:              action,
	})
}

func (s *CommentService) audit(ctx context.Context, actorExternalID, action string, commentID, mediaID int64) {
	id := commentID
	s.sink.PublishAudit(ctx, events.Audit{
		ActorExternalID: actorExternalID,
		ActivityType:    events.ActivitySocial,
		Action:          action,
		EntityType:      events.EntityComment,
		EntityID:        &id,
		Metadata: map[string]any{
			"commentId":  commentID,
			"mediaId":    mediaID,
			"entityType": events.EntityComment,
		},
	})
}
