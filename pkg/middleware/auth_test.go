package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/middleware"
)

func protected(t *testing.T) (http.Handler, *auth.Identity) {
	t.Helper()
	var seen auth.Identity
	h := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.IdentityFromCtx(r.Context())
		if !ok {
			t.Error("identity missing behind RequireAuth")
		}
		seen = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestRequireAuthNoCookie(t *testing.T) {
	h, _ := protected(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	h, _ := protected(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "junk"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := auth.Issue(auth.Identity{Email: "jo@example.com", Name: "Jo", Role: auth.RoleMember})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	h, seen := protected(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.Email != "jo@example.com" || seen.Role != auth.RoleMember {
		t.Errorf("unexpected identity: %+v", *seen)
	}
}
