// Package auth issues and verifies the signed session token carried by the
// HTTP-only "token" cookie. The token is the sole record of session state;
// there is no server-side session store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pawhaven/pawhaven/config"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = time.Hour

var (
	// ErrInvalid is returned when the signature does not match or the
	// payload is malformed.
	ErrInvalid = errors.New("auth: invalid token")

	// ErrExpired is returned when the embedded expiration has passed.
	ErrExpired = errors.New("auth: token expired")
)

// Role is the decoded caller role. It is parsed once at the boundary and
// never re-parsed downstream.
type Role string

const (
	RoleMember Role = "Member"
	RoleAdmin  Role = "Admin"
)

// ParseRole maps a stored role string onto a Role, defaulting to Member
// for anything unrecognised.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleMember
}

// Identity is the verified caller attached to the request context.
type Identity struct {
	Email string
	Name  string
	Role  Role
}

// Claims holds the typed JWT payload.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// Issue creates a signed session token for the given identity,
// valid for TokenTTL from now.
func Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// Verify parses and validates a session token, returning the embedded
// identity. Fails with ErrExpired when the token has run out and
// ErrInvalid for every other defect.
func Verify(t string) (Identity, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalid
	}

	return Identity{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  ParseRole(claims.Role),
	}, nil
}

// CheckAdminPassword compares the submitted admin credential against the
// configured one. ADMIN_PASSWORD_HASH (bcrypt) wins when set; a plaintext
// ADMIN_PASSWORD is accepted for local development.
func CheckAdminPassword(candidate string) bool {
	if hash := config.AdminPasswordHash(); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	}
	plain := config.AdminPassword()
	return plain != "" && candidate == plain
}

// HashPassword returns a bcrypt hash, used by the seeder to mint
// ADMIN_PASSWORD_HASH values.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}
