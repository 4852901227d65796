package auth

import (
	"context"

	"github.com/google/uuid"
)

// Session identifies the authenticated user for a single request. It is
// carried explicitly in the request context instead of any ambient global.
type Session struct {
	UserID   uuid.UUID
	UserType string
}

type sessionKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext extracts the session from the context. The second return
// value reports whether a session is present.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
