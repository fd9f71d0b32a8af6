package middleware

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser injects the signed-in user into the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the signed-in user, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	v := ctx.Value(userContextKey)
	if v == nil {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
