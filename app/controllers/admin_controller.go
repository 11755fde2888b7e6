package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/internal/lifecycle"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/response"
)

// AdminController carries the Admin-only surface: the entity lifecycle
// transitions and the dashboard aggregate.
type AdminController struct {
	store     store.Store
	pets      *repositories.PetRepository
	users     *repositories.UserRepository
	payments  *repositories.PaymentRepository
	adoptions *repositories.AdoptionRepository
}

func NewAdminController(s store.Store, pets *repositories.PetRepository, users *repositories.UserRepository, payments *repositories.PaymentRepository, adoptions *repositories.AdoptionRepository) *AdminController {
	return &AdminController{store: s, pets: pets, users: users, payments: payments, adoptions: adoptions}
}

// Transition handles PATCH /admin/{action}/{id}. The action segment names
// the lifecycle rule; an unknown action is a 404. Transitions are
// idempotent single-field writes.
func (c *AdminController) Transition(w http.ResponseWriter, r *http.Request) {
	action := lifecycle.Action(chi.URLParam(r, "action"))
	if _, ok := lifecycle.Resolve(action); !ok {
		response.NotFound(w)
		return
	}

	if err := lifecycle.Apply(r.Context(), c.store, action, chi.URLParam(r, "id"), nil); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]int{"modifiedCount": 1})
}

// Promote handles PATCH /users/admin/{id}: grants the Admin role. The
// user keeps it until the record is edited out of band.
func (c *AdminController) Promote(w http.ResponseWriter, r *http.Request) {
	if err := lifecycle.Apply(r.Context(), c.store, lifecycle.ActionPromote, chi.URLParam(r, "id"), nil); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]int{"modifiedCount": 1})
}

// Dashboard aggregates the four entity listings the admin screens render.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pets, err := c.pets.All(ctx)
	if err != nil {
		storeError(w, r, err)
		return
	}
	users, err := c.users.All(ctx)
	if err != nil {
		storeError(w, r, err)
		return
	}
	donations, err := c.payments.All(ctx)
	if err != nil {
		storeError(w, r, err)
		return
	}
	adoptions, err := c.adoptions.All(ctx)
	if err != nil {
		storeError(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"pets":      pets,
		"users":     users,
		"donations": donations,
		"adoptions": adoptions,
	})
}
