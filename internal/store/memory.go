package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used by tests and local development.
// Documents round-trip through bson so the same models and tags work
// against Memory and Mongo.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]bson.M
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]bson.M)}
}

func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: marshal: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("store: unmarshal: %w", err)
	}
	return m, nil
}

func decodeDoc(m bson.M, dest interface{}) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	if err := bson.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("store: decode: %w", err)
	}
	return nil
}

func decodeList(docs []bson.M, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: list dest must be a pointer to a slice")
	}

	slice := rv.Elem()
	elemType := slice.Type().Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(docs))

	for _, d := range docs {
		elem := reflect.New(elemType)
		if err := decodeDoc(d, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}

	slice.Set(out)
	return nil
}

func matches(doc bson.M, filter Fields) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// collection returns the named collection, creating it. Callers hold the
// write lock.
func (s *Memory) collection(name string) map[string]bson.M {
	if col, ok := s.data[name]; ok {
		return col
	}
	col := make(map[string]bson.M)
	s.data[name] = col
	return col
}

func (s *Memory) Create(_ context.Context, collection string, doc interface{}) (string, error) {
	m, err := toDoc(doc)
	if err != nil {
		return "", err
	}

	oid := primitive.NewObjectID()
	m["_id"] = oid

	s.mu.Lock()
	s.collection(collection)[oid.Hex()] = m
	s.mu.Unlock()

	return oid.Hex(), nil
}

func (s *Memory) Get(_ context.Context, collection, id string, dest interface{}) error {
	if _, err := objectID(id); err != nil {
		return err
	}

	// Decode while still holding the read lock: documents are mutated in
	// place by Update, so a reference must not escape the lock.
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	return decodeDoc(doc, dest)
}

func (s *Memory) List(_ context.Context, collection string, filter Fields, dest interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []bson.M
	for _, doc := range s.data[collection] {
		if filter == nil || matches(doc, filter) {
			docs = append(docs, doc)
		}
	}
	return decodeList(docs, dest)
}

func (s *Memory) Update(_ context.Context, collection, id string, fields Fields, dest interface{}) error {
	if _, err := objectID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}

	if dest == nil {
		return nil
	}
	return decodeDoc(doc, dest)
}

func (s *Memory) Delete(_ context.Context, collection, id string) error {
	if _, err := objectID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	if _, ok := col[id]; !ok {
		return ErrNotFound
	}
	delete(col, id)
	return nil
}

func (s *Memory) Count(_ context.Context, collection string, filter Fields) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, doc := range s.data[collection] {
		if filter == nil || matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

var _ Store = (*Memory)(nil)
