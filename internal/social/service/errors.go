package service

import "errors"

// Error kinds returned by the comment and like services. Every kind is a
// recoverable-by-caller condition; the REST layer maps each to a transport
// status with a pure lookup. Anything else coming out of a service call is
// unexpected and maps to a generic bad-request response.
var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrUnauthorized    = errors.New("caller is not the author")
	ErrDuplicateLike   = errors.New("media already liked by user")
	ErrContentRejected = errors.New("content rejected by moderation")
)
