package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

// CampaignRepository handles the donation campaign collection.
type CampaignRepository struct {
	store store.Store
}

func NewCampaignRepository(s store.Store) *CampaignRepository {
	return &CampaignRepository{store: s}
}

func (r *CampaignRepository) Create(ctx context.Context, camp models.DonationCampaign) (string, error) {
	defer metrics.ObserveStoreOp("create", time.Now())
	camp.AddedDate = time.Now()
	return r.store.Create(ctx, models.ColCampaigns, camp)
}

func (r *CampaignRepository) Find(ctx context.Context, id string) (models.DonationCampaign, error) {
	defer metrics.ObserveStoreOp("get", time.Now())
	var camp models.DonationCampaign
	err := r.store.Get(ctx, models.ColCampaigns, id, &camp)
	return camp, err
}

func (r *CampaignRepository) All(ctx context.Context) ([]models.DonationCampaign, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	camps := []models.DonationCampaign{}
	err := r.store.List(ctx, models.ColCampaigns, nil, &camps)
	return camps, err
}

func (r *CampaignRepository) UpdateFields(ctx context.Context, id string, fields store.Fields) (models.DonationCampaign, error) {
	defer metrics.ObserveStoreOp("update", time.Now())
	var camp models.DonationCampaign
	err := r.store.Update(ctx, models.ColCampaigns, id, fields, &camp)
	return camp, err
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("delete", time.Now())
	return r.store.Delete(ctx, models.ColCampaigns, id)
}
