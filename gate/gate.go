// Package gate implements authority-based access control. An authenticated
// user resolves to a set of authority strings (role name plus the role's
// permission list); route guards check the set against required authorities.
// The set is recomputed on demand and never persisted.
package gate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Blindworks/rhenanenmanager/auth"
)

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthenticated = errors.New("no authenticated user")
	ErrForbidden       = errors.New("missing required authority")
)

// Authority is a single granted capability: either a role name such as
// "ROLE_ADMIN" or a permission string such as "connection:write".
type Authority string

// Wildcards for super authorities.
const (
	WildcardAll            = "*"
	AuthoritySuperAdmin Authority = "*:*"
)

// Matches checks whether this granted authority satisfies a requested one.
// Supports wildcards: "*:*" matches everything, "connection:*" matches all
// connection actions.
func (a Authority) Matches(requested Authority) bool {
	if a == AuthoritySuperAdmin {
		return true
	}
	if a == requested {
		return true
	}
	res, act, ok := strings.Cut(string(a), ":")
	if !ok || act != WildcardAll {
		return false
	}
	reqRes, _, _ := strings.Cut(string(requested), ":")
	return res == reqRes
}

// Set is the resolved authority set of a user.
type Set []Authority

// Has reports whether any granted authority matches the requested one.
func (s Set) Has(requested Authority) bool {
	for _, a := range s {
		if a.Matches(requested) {
			return true
		}
	}
	return false
}

// HasAny reports whether the set satisfies at least one of the requested
// authorities.
func (s Set) HasAny(requested ...Authority) bool {
	for _, r := range requested {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Resolver resolves a user id to its authority set.
type Resolver interface {
	Resolve(ctx context.Context, userID uint) (Set, error)
}

// Gate is the central authorization checkpoint used by the router.
type Gate struct {
	resolver Resolver
}

func New(resolver Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authorize checks that the context carries an identity whose authority set
// satisfies at least one of the required authorities.
func (g *Gate) Authorize(ctx context.Context, required ...Authority) error {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	set, err := g.resolver.Resolve(ctx, id.UserID)
	if err != nil {
		return fmt.Errorf("resolve authorities: %w", err)
	}
	if !set.HasAny(required...) {
		return ErrForbidden
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(ctx context.Context, required ...Authority) bool {
	return g.Authorize(ctx, required...) == nil
}

// RequireAny returns middleware enforcing that the caller holds at least one
// of the given authorities: 401 without an identity, 403 without authority.
func (g *Gate) RequireAny(required ...Authority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch err := g.Authorize(r.Context(), required...); {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, ErrUnauthenticated):
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			default:
				writeJSONError(w, http.StatusForbidden, "forbidden")
			}
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
