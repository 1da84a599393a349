package auth

import (
	"context"

	"seminarbooking/internal/domain"
)

type contextKey string

const (
	authenticatedUserKey contextKey = "authenticatedUserID"
	oneTimeUserKey       contextKey = "oneTimeUserID"
)

// WithAuthenticatedUser returns a context carrying the authenticated user ID.
// Set by the session middleware for full-account tokens.
func WithAuthenticatedUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, authenticatedUserKey, userID)
}

// WithOneTimeUser returns a context carrying a one-time account user ID.
// Set by the session middleware for guest tokens.
func WithOneTimeUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, oneTimeUserKey, userID)
}

type contextSessionResolver struct{}

// NewSessionResolver returns a SessionResolver reading both identity side
// channels from the request context.
func NewSessionResolver() domain.SessionResolver {
	return &contextSessionResolver{}
}

func (contextSessionResolver) AuthenticatedUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(authenticatedUserKey).(string)
	return id, ok && id != ""
}

func (contextSessionResolver) OneTimeAccountUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(oneTimeUserKey).(string)
	return id, ok && id != ""
}
