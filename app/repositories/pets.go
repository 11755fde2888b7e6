package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

// PetRepository handles the pets collection.
type PetRepository struct {
	store store.Store
}

func NewPetRepository(s store.Store) *PetRepository {
	return &PetRepository{store: s}
}

func (r *PetRepository) Create(ctx context.Context, pet models.Pet) (string, error) {
	defer metrics.ObserveStoreOp("create", time.Now())
	pet.AddedDate = time.Now()
	return r.store.Create(ctx, models.ColPets, pet)
}

func (r *PetRepository) Find(ctx context.Context, id string) (models.Pet, error) {
	defer metrics.ObserveStoreOp("get", time.Now())
	var pet models.Pet
	err := r.store.Get(ctx, models.ColPets, id, &pet)
	return pet, err
}

func (r *PetRepository) All(ctx context.Context) ([]models.Pet, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	pets := []models.Pet{}
	err := r.store.List(ctx, models.ColPets, nil, &pets)
	return pets, err
}

func (r *PetRepository) ByCategory(ctx context.Context, category string) ([]models.Pet, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	pets := []models.Pet{}
	err := r.store.List(ctx, models.ColPets, store.Fields{"category": category}, &pets)
	return pets, err
}

func (r *PetRepository) ByOwner(ctx context.Context, email string) ([]models.Pet, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	pets := []models.Pet{}
	err := r.store.List(ctx, models.ColPets, store.Fields{"userEmail": email}, &pets)
	return pets, err
}

// UpdateFields merges the given fields into a pet. The owner email is
// immutable and must never appear in fields; callers strip it.
func (r *PetRepository) UpdateFields(ctx context.Context, id string, fields store.Fields) (models.Pet, error) {
	defer metrics.ObserveStoreOp("update", time.Now())
	var pet models.Pet
	err := r.store.Update(ctx, models.ColPets, id, fields, &pet)
	return pet, err
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("delete", time.Now())
	return r.store.Delete(ctx, models.ColPets, id)
}
