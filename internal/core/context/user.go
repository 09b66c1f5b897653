// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains the caller identity supplied by the auth collaborator.
// The engine never authenticates; it only stamps createdBy/updatedBy.
type UserContext struct {
	UserID string
	Name   string
	Role   string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// HasRole checks if the caller has a specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}
