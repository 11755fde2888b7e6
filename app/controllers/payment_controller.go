package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/pkg/bind"
	"github.com/pawhaven/pawhaven/pkg/logger"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/payment"
	"github.com/pawhaven/pawhaven/pkg/response"
)

// PaymentController covers both halves of a donation: the gateway intent
// before the charge and the persisted record after it.
type PaymentController struct {
	payments *repositories.PaymentRepository
	gateway  payment.Gateway
}

func NewPaymentController(payments *repositories.PaymentRepository, gw payment.Gateway) *PaymentController {
	return &PaymentController{payments: payments, gateway: gw}
}

type intentRequest struct {
	DonationAmount float64 `json:"donationAmount" validate:"required,gt=0"`
}

// CreateIntent handles POST /create-payment-intent. The amount arrives in
// major units and is converted to cents for the gateway; the client gets
// back only the clientSecret.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	secret, err := c.gateway.CreateIntent(r.Context(), payment.MinorUnits(req.DonationAmount), "usd")
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment intent failed", "error", err)
		response.Upstream(w)
		return
	}
	response.Success(w, map[string]string{"clientSecret": secret})
}

type paymentRequest struct {
	OwnerEmail    string  `json:"ownerEmail" validate:"nullable,email"`
	CampaignID    string  `json:"campId" validate:"nullable"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	TransactionID string  `json:"transactionId" validate:"nullable"`
}

// Create records a completed donation. The donor email comes from the
// session; the record is append-only afterward.
func (c *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())

	var req paymentRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.payments.Create(r.Context(), models.Payment{
		Email:         identity.Email,
		OwnerEmail:    req.OwnerEmail,
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id})
}

// All lists every payment. Admin only.
func (c *PaymentController) All(w http.ResponseWriter, r *http.Request) {
	payments, err := c.payments.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, payments)
}

// ByOwner handles GET /payments/{ownerEmail}: the donations received by
// one campaign owner.
func (c *PaymentController) ByOwner(w http.ResponseWriter, r *http.Request) {
	payments, err := c.payments.ByOwner(r.Context(), chi.URLParam(r, "ownerEmail"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, payments)
}

// Delete removes a payment record. Admin only.
func (c *PaymentController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.payments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]int{"deletedCount": 1})
}
