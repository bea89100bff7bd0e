package auth

import (
	"context"
	"errors"
)

type ctxKey int

const ctxPrincipalID ctxKey = iota

// WithPrincipal attaches the authenticated user id to ctx.
func WithPrincipal(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxPrincipalID, userID)
}

// PrincipalID returns the authenticated user id attached by the guard or the
// activity tracker.
func PrincipalID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxPrincipalID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("principal not in context")
}
