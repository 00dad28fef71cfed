package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

const recommendationsCollection = "recommendations"

// ErrNotFound is returned when no document matches the lookup.
var ErrNotFound = errors.New("document not found")

// Repository defines the recommendation archive operations.
type Repository interface {
	SaveRecommendation(ctx context.Context, record models.RecommendationRecord) error
	FindRecommendation(ctx context.Context, id string) (*models.RecommendationRecord, error)
	ListRecommendationsSince(ctx context.Context, since time.Time) ([]models.RecommendationRecord, error)
}

// MongoDBRepository implements Repository on top of a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: recommendationsCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveRecommendation stores a recommendation record, keyed by its id.
func (r *MongoDBRepository) SaveRecommendation(ctx context.Context, record models.RecommendationRecord) error {
	if record.ID == "" {
		return fmt.Errorf("recommendation id must not be empty")
	}

	if _, err := r.collection().InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert recommendation %s: %w", record.ID, err)
	}
	return nil
}

// FindRecommendation loads a single record by id.
func (r *MongoDBRepository) FindRecommendation(ctx context.Context, id string) (*models.RecommendationRecord, error) {
	var record models.RecommendationRecord
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendation %s: %w", id, err)
	}
	return &record, nil
}

// ListRecommendationsSince returns records created at or after since, newest first.
func (r *MongoDBRepository) ListRecommendationsSince(ctx context.Context, since time.Time) ([]models.RecommendationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"created_at": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.RecommendationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
