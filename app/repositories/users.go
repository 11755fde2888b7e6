// Package repositories wraps the entity store adapter with per-collection
// accessors. All methods are single document operations; the store handle
// is injected at construction.
package repositories

import (
	"context"
	"time"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

// UserRepository handles the users collection.
type UserRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// FindByEmail looks up a user by email. Returns store.ErrNotFound when
// no user carries it.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveStoreOp("list", time.Now())

	var users []models.User
	err := r.store.List(ctx, models.ColUsers, store.Fields{"email": email}, &users)
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, store.ErrNotFound
	}
	return users[0], nil
}

// Create persists a new user unless the email is already registered.
// Registration is idempotent: an existing email returns ("", false, nil)
// and no new record is made.
func (r *UserRepository) Create(ctx context.Context, user models.User) (id string, created bool, err error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return "", false, nil
	} else if err != store.ErrNotFound {
		return "", false, err
	}

	if user.Role == "" {
		user.Role = string(auth.RoleMember)
	}
	user.CreatedAt = time.Now()

	defer metrics.ObserveStoreOp("create", time.Now())
	id, err = r.store.Create(ctx, models.ColUsers, user)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// All returns every registered user.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp("list", time.Now())

	users := []models.User{}
	err := r.store.List(ctx, models.ColUsers, nil, &users)
	return users, err
}
