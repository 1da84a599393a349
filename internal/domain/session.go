package domain

import (
	"context"
	"time"
)

// Clock supplies the current instant. Services take a Clock instead of
// calling time.Now directly so tests can pin it.
type Clock func() time.Time

// SessionResolver exposes the two identity side channels of a request:
// the authenticated session and the anonymous one-time account. Either, both,
// or neither may be present; callers decide precedence.
type SessionResolver interface {
	AuthenticatedUserID(ctx context.Context) (string, bool)
	OneTimeAccountUserID(ctx context.Context) (string, bool)
}
