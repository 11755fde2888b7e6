package controllers

import (
	"net/http"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/pkg/bind"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/response"
)

type AdoptionController struct {
	adoptions *repositories.AdoptionRepository
}

func NewAdoptionController(adoptions *repositories.AdoptionRepository) *AdoptionController {
	return &AdoptionController{adoptions: adoptions}
}

type adoptionRequest struct {
	PetID   string `json:"petId" validate:"required"`
	PetName string `json:"petName" validate:"nullable"`
	Phone   string `json:"phone" validate:"nullable"`
	Address string `json:"address" validate:"nullable"`
}

// Create files an adoption request for the signed-in member. The request
// starts pending: adopt_Req is absent until an Admin accepts or rejects.
func (c *AdoptionController) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	var req adoptionRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.adoptions.Create(r.Context(), models.AdoptionRequest{
		PetID:     req.PetID,
		PetName:   req.PetName,
		UserEmail: identity.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id})
}

func (c *AdoptionController) All(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.adoptions.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, reqs)
}
