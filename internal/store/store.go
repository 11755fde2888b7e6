// Package store provides a uniform document-store adapter over named
// collections. Identifiers are opaque, generated on create, and globally
// unique within a collection. Update performs a strict partial merge and
// never creates a document for a missing id; creation always goes through
// Create.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("store: document not found")

	// ErrBadID is returned when an id is not a well-formed ObjectID.
	ErrBadID = errors.New("store: malformed id")
)

// Fields is a partial set of document fields for updates and filters.
type Fields map[string]interface{}

// Store is the entity store adapter. All operations are single atomic
// document operations; the adapter makes no multi-document transactional
// claims beyond what the underlying store guarantees.
type Store interface {
	// Create inserts doc into collection and returns the generated id.
	Create(ctx context.Context, collection string, doc interface{}) (string, error)

	// Get decodes the document with the given id into dest.
	Get(ctx context.Context, collection, id string, dest interface{}) error

	// List decodes every document matching filter into dest (a pointer to
	// a slice). A nil filter matches everything. The result is a snapshot
	// at call time, unordered.
	List(ctx context.Context, collection string, filter Fields, dest interface{}) error

	// Update merges fields into the document with the given id and decodes
	// the updated document into dest (pass nil to discard it). A missing id
	// is ErrNotFound, never an upsert.
	Update(ctx context.Context, collection, id string, fields Fields, dest interface{}) error

	// Delete removes the document with the given id.
	Delete(ctx context.Context, collection, id string) error

	// Count returns the number of documents matching filter.
	Count(ctx context.Context, collection string, filter Fields) (int64, error)
}
