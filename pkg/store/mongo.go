package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/netdef"
	"github.com/signalgrid/voltpath/pkg/observability"
)

const networksCollection = "networks"

// MongoStore is a MongoDB-backed network store for shared deployments where
// several operators work against the same set of designs.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string // e.g. "mongodb://localhost:27017"
	Database string // e.g. "voltpath"
}

// NewMongoStore connects to MongoDB and verifies the connection.
// Call Close to release the client.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(networksCollection),
	}, nil
}

// Save upserts the document under the given name.
func (s *MongoStore) Save(ctx context.Context, name string, doc netdef.Document) error {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return err
	}

	start := time.Now()
	doc.Name = name
	rec := record{Name: name, UpdatedAt: time.Now().UTC(), Document: doc}
	opts := options.Update().SetUpsert(true)
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": rec},
		opts,
	)
	observability.Store().OnStoreWrite(ctx, "mongo", name, len(doc.Blocks), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("upsert network %q: %w", name, err)
	}
	return nil
}

// Load reads the document stored under the given name.
func (s *MongoStore) Load(ctx context.Context, name string) (netdef.Document, error) {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return netdef.Document{}, err
	}

	start := time.Now()
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	observability.Store().OnStoreRead(ctx, "mongo", name, time.Since(start), err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return netdef.Document{}, vperrors.New(vperrors.ErrCodeNetworkNotFound, "network %q not found", name)
		}
		return netdef.Document{}, fmt.Errorf("find network %q: %w", name, err)
	}
	return rec.Document, nil
}

// List returns info for every stored network, sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	defer cursor.Close(ctx)

	var infos []Info
	for cursor.Next(ctx) {
		var rec record
		if err := cursor.Decode(&rec); err != nil {
			continue // Skip undecodable entries rather than failing the listing
		}
		infos = append(infos, rec.info())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	return infos, nil
}

// Delete removes the stored network. Deleting an unknown name is a no-op.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("delete network %q: %w", name, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
