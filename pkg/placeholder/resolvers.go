package placeholder

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/fortunecookie/pkg/identity"
	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

// Identity claims understood by IdentityResolver.
const (
	ClaimUsername  = "username"
	ClaimRoles     = "roles"
	ClaimPrincipal = "principal"
)

// HeaderResolver reads a request header. Present but empty headers count as found.
func HeaderResolver(r *http.Request, name string) (string, bool) {
	values := r.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// SessionResolver reads an attribute from the request session.
func SessionResolver(r *http.Request, key string) (string, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return "", false
	}

	val, ok := sess.Get(key)
	if !ok || val == nil {
		return "", false
	}

	return fmt.Sprint(val), true
}

// IdentityResolver reads a claim of the authenticated identity.
// Anonymous or missing identities are not found.
func IdentityResolver(r *http.Request, claim string) (string, bool) {
	id, ok := identity.Authenticated(r.Context())
	if !ok {
		return "", false
	}

	switch strings.ToLower(claim) {
	case ClaimUsername:
		return id.Username, true
	case ClaimRoles:
		return id.RolesString(), true
	case ClaimPrincipal:
		return id.PrincipalString()
	default:
		return "", false
	}
}
