package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/internal/lifecycle"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/bind"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/response"
)

type PetController struct {
	pets       *repositories.PetRepository
	categories *repositories.CategoryRepository
	store      store.Store
}

func NewPetController(pets *repositories.PetRepository, categories *repositories.CategoryRepository, s store.Store) *PetController {
	return &PetController{pets: pets, categories: categories, store: s}
}

type petRequest struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"nullable"`
	Age       string `json:"age" validate:"nullable"`
	Gender    string `json:"gender" validate:"nullable"`
	Category  string `json:"category" validate:"nullable"`
	Location  string `json:"location" validate:"nullable"`
	Image     string `json:"image" validate:"nullable,url"`
	ShortDesp string `json:"shortdesp" validate:"nullable"`
	LongDesp  string `json:"longdesp" validate:"nullable"`
}

// Create lists a new pet for the signed-in member. The owner email comes
// from the session, never the body, and a new listing is never adopted.
func (c *PetController) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromCtx(r.Context())

	var req petRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	petID, err := c.pets.Create(r.Context(), models.Pet{
		Name:      req.Name,
		Type:      req.Type,
		Age:       req.Age,
		Gender:    req.Gender,
		Category:  req.Category,
		Location:  req.Location,
		Image:     req.Image,
		ShortDesp: req.ShortDesp,
		LongDesp:  req.LongDesp,
		UserEmail: id.Email,
		Adopted:   false,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": petID})
}

func (c *PetController) All(w http.ResponseWriter, r *http.Request) {
	pets, err := c.pets.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, pets)
}

func (c *PetController) Show(w http.ResponseWriter, r *http.Request) {
	pet, err := c.pets.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, pet)
}

func (c *PetController) ByCategory(w http.ResponseWriter, r *http.Request) {
	pets, err := c.pets.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, pets)
}

// Mine lists the pets the signed-in member has added.
func (c *PetController) Mine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromCtx(r.Context())
	pets, err := c.pets.ByOwner(r.Context(), id.Email)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, pets)
}

type petUpdateRequest struct {
	Name      *string `json:"name" validate:"nullable"`
	Type      *string `json:"type" validate:"nullable"`
	Age       *string `json:"age" validate:"nullable"`
	Gender    *string `json:"gender" validate:"nullable"`
	Category  *string `json:"category" validate:"nullable"`
	Location  *string `json:"location" validate:"nullable"`
	Image     *string `json:"image" validate:"nullable"`
	ShortDesp *string `json:"shortdesp" validate:"nullable"`
	LongDesp  *string `json:"longdesp" validate:"nullable"`
}

func (u petUpdateRequest) fields() store.Fields {
	f := store.Fields{}
	set := func(key string, v *string) {
		if v != nil {
			f[key] = *v
		}
	}
	set("name", u.Name)
	set("type", u.Type)
	set("age", u.Age)
	set("gender", u.Gender)
	set("category", u.Category)
	set("location", u.Location)
	set("image", u.Image)
	set("shortdesp", u.ShortDesp)
	set("longdesp", u.LongDesp)
	return f
}

// Update handles PUT /pets/{id}: a field edit on an existing listing by
// its owner or an Admin. Only the fields present in the body change; the
// owner email and adopted flag are not editable here, and a missing pet is
// a 404, never an insert.
func (c *PetController) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())
	petID := chi.URLParam(r, "id")

	pet, err := c.pets.Find(r.Context(), petID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if identity.Role != auth.RoleAdmin && identity.Email != pet.UserEmail {
		response.Forbidden(w)
		return
	}

	var req petUpdateRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		response.Success(w, pet)
		return
	}

	updated, err := c.pets.UpdateFields(r.Context(), petID, fields)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, updated)
}

// MarkAdopted handles PATCH /pets/{id}: the owner or an Admin flags the
// pet adopted. Repeating it is a no-op.
func (c *PetController) MarkAdopted(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())
	petID := chi.URLParam(r, "id")

	pet, err := c.pets.Find(r.Context(), petID)
	if err != nil {
		storeError(w, r, err)
		return
	}

	rule, _ := lifecycle.Resolve(lifecycle.ActionAdopted)
	if !rule.Allowed(identity, pet.UserEmail) {
		response.Forbidden(w)
		return
	}

	if err := lifecycle.Apply(r.Context(), c.store, lifecycle.ActionAdopted, petID, &pet); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, pet)
}

// Delete removes a listing. Owner or Admin.
func (c *PetController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromCtx(r.Context())
	petID := chi.URLParam(r, "id")

	pet, err := c.pets.Find(r.Context(), petID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if identity.Role != auth.RoleAdmin && identity.Email != pet.UserEmail {
		response.Forbidden(w)
		return
	}

	if err := c.pets.Delete(r.Context(), petID); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]int{"deletedCount": 1})
}

// Categories serves the public category strip, read through the cache.
func (c *PetController) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.categories.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, cats)
}
