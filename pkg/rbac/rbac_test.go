package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/rbac"
)

func serve(t *testing.T, h http.Handler, id *auth.Identity) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *id))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := rbac.RequireAdmin(ok)

	admin := auth.Identity{Email: "admin@pawhaven.app", Role: auth.RoleAdmin}
	member := auth.Identity{Email: "jo@example.com", Role: auth.RoleMember}

	if code := serve(t, h, &admin); code != http.StatusOK {
		t.Errorf("admin expected 200, got %d", code)
	}
	if code := serve(t, h, &member); code != http.StatusForbidden {
		t.Errorf("member expected 403, got %d", code)
	}
	if code := serve(t, h, nil); code != http.StatusForbidden {
		t.Errorf("anonymous expected 403, got %d", code)
	}
}

func TestHasRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := rbac.HasRole(auth.RoleMember, auth.RoleAdmin)(ok)

	member := auth.Identity{Email: "jo@example.com", Role: auth.RoleMember}
	if code := serve(t, h, &member); code != http.StatusOK {
		t.Errorf("member expected 200, got %d", code)
	}
}
