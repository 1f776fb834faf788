package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NguyenHongSon4/app-02/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoDocument struct {
	ID        string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend stores the document in the documents collection of a Mongo
// database.
type MongoBackend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoBackend(ctx context.Context, uri, dbName string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoBackend{
		client:     client,
		collection: client.Database(dbName).Collection("documents"),
	}, nil
}

func (b *MongoBackend) Name() string {
	return "mongo"
}

func (b *MongoBackend) Load(ctx context.Context) (*models.Document, error) {
	var rec mongoDocument
	err := b.collection.FindOne(ctx, bson.M{"_id": DocumentName}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return decodeDocument([]byte(rec.Body))
}

func (b *MongoBackend) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	rec := mongoDocument{
		ID:        DocumentName,
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err = b.collection.ReplaceOne(ctx, bson.M{"_id": DocumentName}, rec, options.Replace().SetUpsert(true))
	return err
}

func (b *MongoBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, readpref.Primary())
}

func (b *MongoBackend) Close() error {
	return b.client.Disconnect(context.Background())
}
