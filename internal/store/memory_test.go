package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
)

func TestMemoryCreateGet(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, models.ColPets, models.Pet{Name: "Milo", Category: "Cat", UserEmail: "jo@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var pet models.Pet
	if err := s.Get(ctx, models.ColPets, id, &pet); err != nil {
		t.Fatalf("get: %v", err)
	}
	if pet.Name != "Milo" || pet.UserEmail != "jo@example.com" {
		t.Errorf("unexpected pet: %+v", pet)
	}
	if pet.ID.IsZero() {
		t.Error("decoded pet should carry its id")
	}
}

func TestMemoryGetBadID(t *testing.T) {
	s := store.NewMemory()
	var pet models.Pet
	if err := s.Get(context.Background(), models.ColPets, "nonsense", &pet); err != store.ErrBadID {
		t.Errorf("expected ErrBadID, got %v", err)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	s := store.NewMemory()
	var pet models.Pet
	if err := s.Get(context.Background(), models.ColPets, "65a000000000000000000001", &pet); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// Update must merge only the given fields and leave the rest untouched.
func TestMemoryUpdatePartialMerge(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, models.ColPets, models.Pet{
		Name: "Milo", Age: "2", Location: "Austin", UserEmail: "jo@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var updated models.Pet
	err = s.Update(ctx, models.ColPets, id, store.Fields{"location": "Dallas"}, &updated)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Location != "Dallas" {
		t.Errorf("location not updated: %+v", updated)
	}
	if updated.Name != "Milo" || updated.Age != "2" || updated.UserEmail != "jo@example.com" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

// Updating an id that does not exist must not insert.
func TestMemoryUpdateNoUpsert(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	err := s.Update(ctx, models.ColPets, "65a000000000000000000001", store.Fields{"name": "Ghost"}, nil)
	if err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	n, err := s.Count(ctx, models.ColPets, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("update of a missing id inserted a document, count=%d", n)
	}
}

func TestMemoryListFilter(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	for _, p := range []models.Pet{
		{Name: "Milo", Category: "Cat", UserEmail: "jo@example.com"},
		{Name: "Rex", Category: "Dog", UserEmail: "jo@example.com"},
		{Name: "Nemo", Category: "Fish", UserEmail: "sam@example.com"},
	} {
		if _, err := s.Create(ctx, models.ColPets, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	var cats []models.Pet
	if err := s.List(ctx, models.ColPets, store.Fields{"category": "Cat"}, &cats); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Milo" {
		t.Errorf("unexpected filter result: %+v", cats)
	}

	var all []models.Pet
	if err := s.List(ctx, models.ColPets, nil, &all); err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 pets, got %d", len(all))
	}

	n, err := s.Count(ctx, models.ColPets, store.Fields{"userEmail": "jo@example.com"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestMemoryDelete(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, models.ColPets, models.Pet{Name: "Milo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(ctx, models.ColPets, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, models.ColPets, id); err != store.ErrNotFound {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}

	var pet models.Pet
	if err := s.Get(ctx, models.ColPets, id, &pet); err != store.ErrNotFound {
		t.Errorf("deleted pet still readable: %v", err)
	}
}

// Collections are independent namespaces on the same ids.
func TestMemoryCollectionsIsolated(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, models.ColPets, models.Pet{Name: "Milo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var user models.User
	if err := s.Get(ctx, models.ColUsers, id, &user); err != store.ErrNotFound {
		t.Errorf("pet id resolved in users collection: %v", err)
	}
}

// List hands decoded copies back, so concurrent readers and writers on
// the same document must never observe each other.
func TestMemoryConcurrentListAndUpdate(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, models.ColPets, models.Pet{Name: "Milo", Location: "Austin", UserEmail: "jo@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if err := s.Update(ctx, models.ColPets, id, store.Fields{"location": fmt.Sprintf("city-%d", i)}, nil); err != nil {
				t.Errorf("update: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			var pets []models.Pet
			if err := s.List(ctx, models.ColPets, nil, &pets); err != nil {
				t.Errorf("list: %v", err)
			}
			var pet models.Pet
			if err := s.Get(ctx, models.ColPets, id, &pet); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}
	wg.Wait()

	var pet models.Pet
	if err := s.Get(ctx, models.ColPets, id, &pet); err != nil {
		t.Fatalf("get after churn: %v", err)
	}
	if pet.Name != "Milo" {
		t.Errorf("untouched field changed: %+v", pet)
	}
}
