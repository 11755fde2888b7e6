package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB-backed Store. The client is owned here with an
// explicit connect-on-start / close-on-shutdown lifecycle and is injected
// into repositories rather than captured from package scope.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo opens a client against uri and pings it before returning.
func ConnectMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Database exposes the underlying handle for collaborators that need raw
// collection access (the Mongo log sink).
func (m *Mongo) Database() *mongo.Database { return m.db }

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrBadID
	}
	return oid, nil
}

func toBSON(filter Fields) bson.M {
	if filter == nil {
		return bson.M{}
	}
	out := make(bson.M, len(filter))
	for k, v := range filter {
		out[k] = v
	}
	return out
}

func (m *Mongo) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("store: insert into %s: %w", collection, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}

func (m *Mongo) Get(ctx context.Context, collection, id string, dest interface{}) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	err = m.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: find in %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) List(ctx context.Context, collection string, filter Fields, dest interface{}) error {
	cursor, err := m.db.Collection(collection).Find(ctx, toBSON(filter))
	if err != nil {
		return fmt.Errorf("store: list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, dest); err != nil {
		return fmt.Errorf("store: decode %s: %w", collection, err)
	}
	return nil
}

// Update applies a $set of fields. Upsert is deliberately off: a missing
// id is reported as ErrNotFound and the caller must Create instead.
func (m *Mongo) Update(ctx context.Context, collection, id string, fields Fields, dest interface{}) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := m.db.Collection(collection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": toBSON(fields)},
		opts,
	)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("store: update %s: %w", collection, err)
	}

	if dest == nil {
		return nil
	}
	if err := res.Decode(dest); err != nil {
		return fmt.Errorf("store: decode updated %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Count(ctx context.Context, collection string, filter Fields) (int64, error) {
	n, err := m.db.Collection(collection).CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("store: count %s: %w", collection, err)
	}
	return n, nil
}

var _ Store = (*Mongo)(nil)
