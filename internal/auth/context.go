// Package auth resolves session cookies into request identity and issues
// session credentials.
package auth

import (
	"context"

	"iot-capstone/backend/internal/session/domain"
)

type contextKey struct{ name string }

var sessionKey = contextKey{"session"}

// WithSession returns a context carrying the resolved session.
// Handlers read it back via FromContext.
func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the session from context and true if set; otherwise nil, false.
// An anonymous request has no session in context.
func FromContext(ctx context.Context) (*domain.Session, bool) {
	v, ok := ctx.Value(sessionKey).(*domain.Session)
	return v, ok
}
