package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

// PaymentRepository handles payment records. Records are append-only:
// there is deliberately no update method.
type PaymentRepository struct {
	store store.Store
}

func NewPaymentRepository(s store.Store) *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (r *PaymentRepository) Create(ctx context.Context, p models.Payment) (string, error) {
	defer metrics.ObserveStoreOp("create", time.Now())
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return r.store.Create(ctx, models.ColPayments, p)
}

func (r *PaymentRepository) All(ctx context.Context) ([]models.Payment, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	payments := []models.Payment{}
	err := r.store.List(ctx, models.ColPayments, nil, &payments)
	return payments, err
}

// ByOwner returns the donations made toward campaigns owned by email.
func (r *PaymentRepository) ByOwner(ctx context.Context, email string) ([]models.Payment, error) {
	defer metrics.ObserveStoreOp("list", time.Now())
	payments := []models.Payment{}
	err := r.store.List(ctx, models.ColPayments, store.Fields{"ownerEmail": email}, &payments)
	return payments, err
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("delete", time.Now())
	return r.store.Delete(ctx, models.ColPayments, id)
}
