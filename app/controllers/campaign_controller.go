package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/bind"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/response"
)

type CampaignController struct {
	campaigns *repositories.CampaignRepository
}

func NewCampaignController(campaigns *repositories.CampaignRepository) *CampaignController {
	return &CampaignController{campaigns: campaigns}
}

type campaignRequest struct {
	Name             string  `json:"name" validate:"required"`
	Image            string  `json:"image" validate:"nullable,url"`
	MaxDonationLimit float64 `json:"max_donation_limit" validate:"required,gt=0"`
	ShortDesp        string  `json:"shortdesp" validate:"nullable"`
	LongDesp         string  `json:"longdesp" validate:"nullable"`
	LastDonationDate string  `json:"last_donation_date" validate:"nullable,date"`
}

// Create starts a donation campaign owned by the signed-in member. New
// campaigns are live; pausing is a separate Admin transition.
func (c *CampaignController) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	var req campaignRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.campaigns.Create(r.Context(), models.DonationCampaign{
		Name:             req.Name,
		Image:            req.Image,
		MaxDonationLimit: req.MaxDonationLimit,
		ShortDesp:        req.ShortDesp,
		LongDesp:         req.LongDesp,
		LastDonationDate: req.LastDonationDate,
		UserEmail:        identity.Email,
		Pause:            false,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id})
}

func (c *CampaignController) All(w http.ResponseWriter, r *http.Request) {
	camps, err := c.campaigns.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, camps)
}

func (c *CampaignController) Show(w http.ResponseWriter, r *http.Request) {
	camp, err := c.campaigns.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, camp)
}

type campaignUpdateRequest struct {
	Name             *string  `json:"name" validate:"nullable"`
	Image            *string  `json:"image" validate:"nullable"`
	MaxDonationLimit *float64 `json:"max_donation_limit" validate:"nullable,gt=0"`
	ShortDesp        *string  `json:"shortdesp" validate:"nullable"`
	LongDesp         *string  `json:"longdesp" validate:"nullable"`
	LastDonationDate *string  `json:"last_donation_date" validate:"nullable"`
}

func (u campaignUpdateRequest) fields() store.Fields {
	f := store.Fields{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Image != nil {
		f["image"] = *u.Image
	}
	if u.MaxDonationLimit != nil {
		f["max_donation_limit"] = *u.MaxDonationLimit
	}
	if u.ShortDesp != nil {
		f["shortdesp"] = *u.ShortDesp
	}
	if u.LongDesp != nil {
		f["longdesp"] = *u.LongDesp
	}
	if u.LastDonationDate != nil {
		f["last_donation_date"] = *u.LastDonationDate
	}
	return f
}

// Update handles PUT /updatedonationcamp/{id}. Owner or Admin; the owner
// email and pause flag never change through this route.
func (c *CampaignController) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())
	campID := chi.URLParam(r, "id")

	camp, err := c.campaigns.Find(r.Context(), campID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if identity.Role != auth.RoleAdmin && identity.Email != camp.UserEmail {
		response.Forbidden(w)
		return
	}

	var req campaignUpdateRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		response.Success(w, camp)
		return
	}

	updated, err := c.campaigns.UpdateFields(r.Context(), campID, fields)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, updated)
}

// Delete removes a campaign. Owner or Admin.
func (c *CampaignController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())
	campID := chi.URLParam(r, "id")

	camp, err := c.campaigns.Find(r.Context(), campID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if identity.Role != auth.RoleAdmin && identity.Email != camp.UserEmail {
		response.Forbidden(w)
		return
	}

	if err := c.campaigns.Delete(r.Context(), campID); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]int{"deletedCount": 1})
}
