package service

import "context"

// MediaOracle answers existence and ownership questions about media items
// held by the trip service. Implementations absorb transport failures:
// "couldn't ask" and "doesn't exist" are indistinguishable here.
type MediaOracle interface {
	MediaExists(ctx context.Context, mediaID int64, credential string) bool
	MediaOwner(ctx context.Context, mediaID int64, credential string) (string, bool)
}

// ModerationOracle gives a verdict on user-supplied text.
type ModerationOracle interface {
	IsTextAllowed(ctx context.Context, text string) bool
}
