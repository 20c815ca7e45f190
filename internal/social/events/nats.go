package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subjects for the social event streams.
const (
	SubjectNotifications = "social.notifications"
	SubjectAudit         = "social.audit"
)

// envelope wraps every published event with an id for downstream
// idempotency.
type envelope struct {
	EventID string `json:"event_id"`
	Payload any    `json:"payload"`
}

// NATSSink publishes events to NATS JetStream. The zero value and a nil
// pointer are both safe no-op stubs, so services run without NATS in
// development and in tests.
type NATSSink struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// NewNATSSink creates a sink from an existing JetStream context.
// Pass js=nil to get a no-op stub.
func NewNATSSink(js nats.JetStreamContext, log *zap.Logger) *NATSSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &NATSSink{js: js, log: log}
}

// PublishNotification sends a notification event asynchronously.
// Failures are logged as warnings and never surface to the caller.
func (s *NATSSink) PublishNotification(_ context.Context, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	s.publish(SubjectNotifications, n)
}

// PublishAudit sends an audit event asynchronously.
func (s *NATSSink) PublishAudit(_ context.Context, a Audit) {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	s.publish(SubjectAudit, a)
}

func (s *NATSSink) publish(subject string, payload any) {
	if s == nil || s.js == nil {
		return
	}
	data, err := json.Marshal(envelope{EventID: uuid.NewString(), Payload: payload})
	if err != nil {
		s.log.Warn("events: marshal failed", zap.String("subject", subject), zap.Error(err))
		return
	}
	if _, err := s.js.PublishAsync(subject, data); err != nil {
		s.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
