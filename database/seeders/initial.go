package seeders

import (
	"context"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("pet-categories", SeedPetCategories)
}

// SeedAdminUser makes sure the configured admin email exists as a user
// with the Admin role.
func SeedAdminUser(ctx context.Context, s store.Store) error {
	email := config.AdminEmail()
	if email == "" {
		return nil
	}

	var existing []models.User
	if err := s.List(ctx, models.ColUsers, store.Fields{"email": email}, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	_, err := s.Create(ctx, models.ColUsers, models.User{
		Name:  "Admin",
		Email: email,
		Role:  string(auth.RoleAdmin),
	})
	return err
}

var defaultCategories = []string{"Cat", "Dog", "Rabbit", "Fish", "Bird"}

// SeedPetCategories fills the category strip when it is empty.
func SeedPetCategories(ctx context.Context, s store.Store) error {
	n, err := s.Count(ctx, models.ColCategories, nil)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, c := range defaultCategories {
		if _, err := s.Create(ctx, models.ColCategories, models.PetCategory{Category: c}); err != nil {
			return err
		}
	}
	return nil
}
