// Package seeders provides a registry of seed functions run through the
// CLI (`pawhaven seed`). Seeders are idempotent: each checks for its data
// before inserting.
package seeders

import (
	"context"
	"fmt"
	"sync"

	"github.com/pawhaven/pawhaven/internal/store"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, s store.Store) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry. Call from init() in
// seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order and
// stops on the first error.
func RunAll(ctx context.Context, s store.Store) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Printf("  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, s); err != nil {
			fmt.Println("failed")
			return fmt.Errorf("seeder %s: %w", e.name, err)
		}
		fmt.Println("ok")
	}
	return nil
}
