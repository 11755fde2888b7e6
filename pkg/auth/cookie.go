package auth

import (
	"net/http"

	"github.com/pawhaven/pawhaven/config"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// SetCookie writes the session cookie. HTTP-only always; Secure and
// SameSite=None in production so the hosted front end can send it
// cross-site, Strict otherwise.
func SetCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
	if config.IsProduction() {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

// ClearCookie expires the session cookie immediately.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteNoneMode,
	})
}

// FromRequest extracts the raw session token from the request cookie.
// Returns "" when the cookie is absent.
func FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
