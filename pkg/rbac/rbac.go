// Package rbac provides the role gate layered on top of RequireAuth.
package rbac

import (
	"net/http"

	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/response"
)

// HasRole allows only callers whose decoded role is one of roles.
// RequireAuth must run first; a request without an identity is a 403
// here, never a silent pass.
func HasRole(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.IdentityFromCtx(r.Context())
			if !ok || !allowed[id.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is the Admin gate used by every lifecycle route.
func RequireAdmin(next http.Handler) http.Handler {
	return HasRole(auth.RoleAdmin)(next)
}
