// Package events carries the notification and audit records derived from
// social mutations, and the fire-and-forget publisher that hands them to the
// downstream notification/audit systems.
package events

import (
	"context"
	"time"
)

// Notification actions.
const (
	ActionAdd   = "ADD"
	ActionReply = "REPLY"
	ActionLike  = "LIKE"
)

// Audit constants.
const (
	ActivitySocial = "SOCIAL_ACTIVITY"
	EntityComment  = "COMMENT"
	EntityLike     = "LIKE"

	AuditCommentCreated = "COMMENT_CREATED"
	AuditCommentUpdated = "COMMENT_UPDATED"
	AuditCommentDeleted = "COMMENT_DELETED"
	AuditLikeCreated    = "LIKE_CREATED"
	AuditLikeDeleted    = "LIKE_DELETED"
)

// Notification tells the notification system who acted on what. Receivers
// are external identities; the comment/media references let it deep-link.
type Notification struct {
	Timestamp           time.Time `json:"timestamp"`
	SenderExternalID    string    `json:"senderId"`
	ReceiverExternalIDs []string  `json:"receiverIds"`
	CommentID           *int64    `json:"commentReferenceId,omitempty"`
	MediaID             *int64    `json:"mediaReferenceId,omitempty"`
	Action              string    `json:"action"`
}

// Audit is the activity-trail record for a social mutation.
type Audit struct {
	Timestamp       time.Time      `json:"timestamp"`
	ActorExternalID string         `json:"userId"`
	ActivityType    string         `json:"activityType"`
	Action          string         `json:"action"`
	EntityType      string         `json:"entityType"`
	EntityID        *int64         `json:"entityId,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Sink accepts fully-formed events. Delivery is asynchronous and best-effort;
// implementations never block the calling request and never return an error.
type Sink interface {
	PublishNotification(ctx context.Context, n Notification)
	PublishAudit(ctx context.Context, a Audit)
}
