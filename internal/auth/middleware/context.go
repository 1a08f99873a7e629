package auth

import (
	"context"

	"github.com/examgate/examgate/internal/session"
)

type ctxKey struct{}

var ctxKeySession = ctxKey{}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFromContext returns the request's session, or nil outside the
// session middleware.
func SessionFromContext(ctx context.Context) *session.Session {
	if v := ctx.Value(ctxKeySession); v != nil {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
