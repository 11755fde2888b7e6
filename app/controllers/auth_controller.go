package controllers

import (
	"net/http"

	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/bind"
	"github.com/pawhaven/pawhaven/pkg/logger"
	"github.com/pawhaven/pawhaven/pkg/response"
)

// AuthController issues and clears session cookies. Tokens are short
// lived; the client re-posts /jwt after each sign-in.
type AuthController struct {
	users *repositories.UserRepository
}

func NewAuthController(users *repositories.UserRepository) *AuthController {
	return &AuthController{users: users}
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"nullable"`
}

// IssueToken handles POST /jwt. The role on the token comes from the
// stored user record, never from the request body; an unregistered email
// gets a Member token.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	role := auth.RoleMember
	name := req.Name
	user, err := c.users.FindByEmail(r.Context(), req.Email)
	switch err {
	case nil:
		role = auth.ParseRole(user.Role)
		if name == "" {
			name = user.Name
		}
	case store.ErrNotFound:
		// first sign-in, registration happens on POST /users
	default:
		storeError(w, r, err)
		return
	}

	token, err := auth.Issue(auth.Identity{Email: req.Email, Name: name, Role: role})
	if err != nil {
		logger.WithCtx(r.Context()).Error("token issue failed", "error", err)
		response.Upstream(w)
		return
	}

	auth.SetCookie(w, token)
	response.Success(w, map[string]bool{"success": true})
}

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin handles POST /admin/login against the configured admin
// credential. Wrong email and wrong password are indistinguishable.
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if req.Email != config.AdminEmail() || !auth.CheckAdminPassword(req.Password) {
		logger.WithCtx(r.Context()).Warn("admin login rejected", "email", req.Email)
		response.Unauthorized(w)
		return
	}

	token, err := auth.Issue(auth.Identity{Email: req.Email, Name: "Admin", Role: auth.RoleAdmin})
	if err != nil {
		logger.WithCtx(r.Context()).Error("token issue failed", "error", err)
		response.Upstream(w)
		return
	}

	auth.SetCookie(w, token)
	response.Success(w, map[string]bool{"success": true})
}

// Logout clears the session cookie. Always succeeds.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	response.Success(w, map[string]bool{"success": true})
}
