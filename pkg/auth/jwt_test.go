package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/pkg/auth"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	token, err := auth.Issue(auth.Identity{Email: "jo@example.com", Name: "Jo", Role: auth.RoleMember})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := auth.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Email != "jo@example.com" || id.Name != "Jo" || id.Role != auth.RoleMember {
		t.Errorf("identity mismatch: %+v", id)
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := auth.Verify("not.a.token"); err != auth.ErrInvalid {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyTampered(t *testing.T) {
	token, err := auth.Issue(auth.Identity{Email: "jo@example.com", Role: auth.RoleMember})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := auth.Verify(token + "x"); err != auth.ErrInvalid {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	claims := auth.Claims{
		Email: "old@example.com",
		Role:  string(auth.RoleMember),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWTSecret()))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.Verify(token); err != auth.ErrExpired {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	claims := auth.Claims{
		Email: "jo@example.com",
		Role:  string(auth.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-elses-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.Verify(token); err != auth.ErrInvalid {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if auth.ParseRole("Admin") != auth.RoleAdmin {
		t.Error("Admin should parse to RoleAdmin")
	}
	if auth.ParseRole("Member") != auth.RoleMember {
		t.Error("Member should parse to RoleMember")
	}
	if auth.ParseRole("superuser") != auth.RoleMember {
		t.Error("unknown roles fall back to Member")
	}
}

func TestCheckAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	if !auth.CheckAdminPassword("hunter2") {
		t.Error("plaintext password should match")
	}
	if auth.CheckAdminPassword("wrong") {
		t.Error("wrong password should fail")
	}

	hash, err := auth.HashPassword("s3cure")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	t.Setenv("ADMIN_PASSWORD_HASH", hash)

	if !auth.CheckAdminPassword("s3cure") {
		t.Error("hashed password should match")
	}
	if auth.CheckAdminPassword("hunter2") {
		t.Error("hash takes precedence over plaintext")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.SetCookie(rec, "tok123")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	if got := auth.FromRequest(req); got != "tok123" {
		t.Errorf("expected tok123, got %q", got)
	}

	cookie := rec.Result().Cookies()[0]
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.ClearCookie(rec)

	cookie := rec.Result().Cookies()[0]
	if cookie.MaxAge >= 0 && cookie.Value != "" {
		t.Errorf("clear should drop the cookie, got %+v", cookie)
	}
}
