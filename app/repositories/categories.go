package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/cache"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

const categoryCacheKey = "pawhaven:petcategories"
const categoryCacheTTL = 5 * time.Minute

// CategoryRepository serves the public category strip. The listing is
// read-mostly, so it goes through the Redis cache; a cache miss falls
// through to the store.
type CategoryRepository struct {
	store store.Store
}

func NewCategoryRepository(s store.Store) *CategoryRepository {
	return &CategoryRepository{store: s}
}

func (r *CategoryRepository) All(ctx context.Context) ([]models.PetCategory, error) {
	var cats []models.PetCategory
	if cache.Get(categoryCacheKey, &cats) {
		return cats, nil
	}

	defer metrics.ObserveStoreOp("list", time.Now())
	cats = []models.PetCategory{}
	if err := r.store.List(ctx, models.ColCategories, nil, &cats); err != nil {
		return nil, err
	}

	_ = cache.Set(categoryCacheKey, cats, categoryCacheTTL)
	return cats, nil
}
