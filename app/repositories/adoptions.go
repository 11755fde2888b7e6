package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

// AdoptionRepository handles adoption requests. Requests are created by
// members; only the Admin lifecycle transitions touch adopt_Req.
type AdoptionRepository struct {
	store store.Store
}

func NewAdoptionRepository(s store.Store) *AdoptionRepository {
	return &AdoptionRepository{store: s}
}

func (r *AdoptionRepository) Create(ctx context.Context, req models.AdoptionRequest) (string, error) {
	defer metrics.ObserveStoreOp("create", time.Now())
	return r.store.Create(ctx, models.ColAdoptions, req)
}

func (r *AdoptionRepository) All(ctx context.Context) ([]models.AdoptionRequest, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	reqs := []models.AdoptionRequest{}
	err := r.store.List(ctx, models.ColAdoptions, nil, &reqs)
	return reqs, err
}
