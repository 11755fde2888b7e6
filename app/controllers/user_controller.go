package controllers

import (
	"net/http"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/pkg/bind"
	"github.com/pawhaven/pawhaven/pkg/response"
)

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

type registerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Register handles POST /users. Registration is idempotent: an already
// known email answers with a null insertedId and no new record.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, created, err := c.users.Create(r.Context(), models.User{Name: req.Name, Email: req.Email})
	if err != nil {
		storeError(w, r, err)
		return
	}
	if !created {
		response.Success(w, map[string]interface{}{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id})
}

// All lists every user. Admin only.
func (c *UserController) All(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, users)
}
