package middleware

import (
	"context"
	"net/http"

	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/response"
)

type identityKey struct{}

// WithIdentity stores the verified caller in ctx.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx returns the caller attached by RequireAuth.
func IdentityFromCtx(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// RequireAuth rejects requests without a valid session cookie. On success
// the decoded identity is attached to the request context; the guard has
// no other side effects. Missing, malformed, and expired tokens are all 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.FromRequest(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		id, err := auth.Verify(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
