// Package actor provides request-scoped identity propagation.
// The number issuer and the order-invoice guard stamp audit fields with the
// acting user, so the actor travels explicitly in context instead of being
// read from ambient globals.
package actor

import (
	"context"
)

// Actor describes the authenticated user performing the current operation.
// It is established by the HTTP middleware from the auth gateway's token;
// the platform itself owns no sessions.
type Actor struct {
	UserID      string
	Name        string
	Roles       []string
	Permissions []string
}

type actorKey struct{}

// WithActor adds Actor to context.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// FromContext returns Actor from context, or nil for unauthenticated flows
// (seeding, tests, internal jobs).
func FromContext(ctx context.Context) *Actor {
	if a, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return a
	}
	return nil
}

// UserID returns the acting user id from context or "system".
// Audit columns are non-null, so internal flows are attributed to "system".
func UserID(ctx context.Context) string {
	if a := FromContext(ctx); a != nil && a.UserID != "" {
		return a.UserID
	}
	return "system"
}

// HasPermission checks if the actor carries a permission string.
// The role/permission matrix itself is maintained by the auth collaborator;
// here we only consult what its token asserted.
func HasPermission(ctx context.Context, perm string) bool {
	a := FromContext(ctx)
	if a == nil {
		return false
	}
	for _, p := range a.Permissions {
		if p == perm || p == "*" {
			return true
		}
	}
	return false
}

// HasRole checks if the actor carries a role.
func HasRole(ctx context.Context, role string) bool {
	a := FromContext(ctx)
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
