// Package identity carries the authenticated principal of the current request.
//
// Authentication middleware (see pkg/jwt) stores an Identity in the request context; consumers
// such as the identity placeholder resolver read it back with FromContext. A missing identity
// and an anonymous identity are both treated as "not authenticated".
package identity

import (
	"context"
	"fmt"
	"strings"
)

// Identity describes who is making the request.
type Identity struct {
	// Username is the principal name (JWT "name" or "sub").
	Username string
	// Roles is the list of granted authorities.
	Roles []string
	// Principal is the raw principal object as produced by the authenticator.
	Principal any
	// Anonymous marks identities issued for unauthenticated callers.
	Anonymous bool
}

// IsAuthenticated reports whether the identity represents a real, non-anonymous user.
func (i Identity) IsAuthenticated() bool {
	return !i.Anonymous && i.Username != ""
}

// RolesString returns the authorities joined by commas.
func (i Identity) RolesString() string {
	return strings.Join(i.Roles, ",")
}

// PrincipalString returns the string form of the raw principal.
// The second return value is false when no principal is attached.
func (i Identity) PrincipalString() (string, bool) {
	if i.Principal == nil {
		return "", false
	}
	if s, ok := i.Principal.(fmt.Stringer); ok {
		return s.String(), true
	}
	return fmt.Sprint(i.Principal), true
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Authenticated returns the identity only when it is present and not anonymous.
func Authenticated(ctx context.Context) (Identity, bool) {
	id, ok := FromContext(ctx)
	if !ok || !id.IsAuthenticated() {
		return Identity{}, false
	}
	return id, true
}
