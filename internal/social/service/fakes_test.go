package service

import (
	"context"
	"sync"

	"github.com/SystAttic/TraversiumSocialService/internal/social/events"
)

// fakeMedia answers existence and ownership from fixed maps and counts
// owner lookups.
type fakeMedia struct {
	existing   map[int64]bool
	owners     map[int64]string
	ownerCalls int
}

func (f *fakeMedia) MediaExists(_ context.Context, mediaID int64, _ string) bool {
	return f.existing[mediaID]
}

func (f *fakeMedia) MediaOwner(_ context.Context, mediaID int64, _ string) (string, bool) {
	f.ownerCalls++
	owner, ok := f.owners[mediaID]
	return owner, ok && owner != ""
}

// fakeModeration rejects exactly the listed strings.
type fakeModeration struct {
	rejected map[string]bool
}

func (f *fakeModeration) IsTextAllowed(_ context.Context, text string) bool {
	return !f.rejected[text]
}

// captureSink records every published event for assertions.
type captureSink struct {
	mu            sync.Mutex
	notifications []events.Notification
	audits        []events.Audit
}

func (s *captureSink) PublishNotification(_ context.Context, n events.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *captureSink) PublishAudit(_ context.Context, a events.Audit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, a)
}
