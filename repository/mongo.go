package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"richarticles/types"
)

// MongoConfig configures the Mongo connection
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// referenceDocument is the stored shape of an article reference
type referenceDocument struct {
	ID           string   `bson:"_id"`
	Name         string   `bson:"name"`
	HeroImageURL string   `bson:"hero_image_url,omitempty"`
	VideoURLs    []string `bson:"video_urls"`
}

func (d referenceDocument) reference() *types.ArticleReference {
	urls := d.VideoURLs
	if urls == nil {
		urls = []string{}
	}
	return &types.ArticleReference{
		ID:           d.ID,
		Name:         d.Name,
		HeroImageURL: d.HeroImageURL,
		VideoURLs:    urls,
	}
}

func documentFor(ref types.ArticleReference) referenceDocument {
	return referenceDocument{
		ID:           ref.ID,
		Name:         ref.Name,
		HeroImageURL: ref.HeroImageURL,
		VideoURLs:    ref.VideoURLs,
	}
}

// MongoRepository reads article references from a Mongo collection keyed by _id
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoRepository connects to Mongo and pings it
func NewMongoRepository(ctx context.Context, cfg MongoConfig) (*MongoRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("can't ping MongoDB: %w", err)
	}

	return &MongoRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// ArticleReference finds the document with _id == id. No document yields nil.
func (m *MongoRepository) ArticleReference(ctx context.Context, id string) (*types.ArticleReference, error) {
	var doc referenceDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find article %s: %w", id, err)
	}
	return doc.reference(), nil
}

// Save upserts ref
func (m *MongoRepository) Save(ctx context.Context, ref types.ArticleReference) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": ref.ID}, documentFor(ref), opts)
	if err != nil {
		return fmt.Errorf("mongo upsert article %s: %w", ref.ID, err)
	}
	return nil
}

// Close disconnects the client
func (m *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
