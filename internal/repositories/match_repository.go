package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MatchRepository defines the interface for item match data operations
type MatchRepository interface {
	CreateMatch(ctx context.Context, match *models.ItemMatch) error
	GetMatchByID(ctx context.Context, id string) (*models.ItemMatch, error)
	ConfirmMatch(ctx context.Context, id string, status string, adminID uint) (*models.ItemMatch, error)
	ListMatchesByItemIDs(ctx context.Context, lostIDs, foundIDs []primitive.ObjectID) ([]models.ItemMatch, error)
	CountMatchesByStatus(ctx context.Context, status string) (int64, error)
	CountMatchesSince(ctx context.Context, since time.Time) (int64, error)
}

// MongoMatchRepository implements MatchRepository over the matches collection.
type MongoMatchRepository struct {
	collection *mongo.Collection
}

// NewMongoMatchRepository creates a new MongoMatchRepository
func NewMongoMatchRepository(db *mongo.Database) *MongoMatchRepository {
	return &MongoMatchRepository{collection: db.Collection("matches")}
}

// CreateMatch inserts a new pending match pair
func (r *MongoMatchRepository) CreateMatch(ctx context.Context, match *models.ItemMatch) error {
	match.ID = primitive.NewObjectID()
	match.Status = models.MatchStatusPending
	match.CreatedAt = time.Now()
	match.UpdatedAt = match.CreatedAt
	_, err := r.collection.InsertOne(ctx, match)
	return err
}

// GetMatchByID retrieves a match by ID
func (r *MongoMatchRepository) GetMatchByID(ctx context.Context, id string) (*models.ItemMatch, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid match ID format: %w", err)
	}
	var match models.ItemMatch
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&match); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// ConfirmMatch records the admin decision on a pending match and returns the
// updated document. Re-confirming a decided match yields ErrConflict.
func (r *MongoMatchRepository) ConfirmMatch(ctx context.Context, id string, status string, adminID uint) (*models.ItemMatch, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid match ID format: %w", err)
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":       status,
		"confirmed_by": adminID,
		"confirmed_at": now,
		"updated_at":   now,
	}}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var match models.ItemMatch
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "status": models.MatchStatusPending},
		update, opts).Decode(&match)
	if err == nil {
		return &match, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
	if countErr != nil {
		return nil, countErr
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConflict
}

// ListMatchesByItemIDs returns matches touching any of the given lost or
// found item IDs, newest first.
func (r *MongoMatchRepository) ListMatchesByItemIDs(ctx context.Context, lostIDs, foundIDs []primitive.ObjectID) ([]models.ItemMatch, error) {
	if len(lostIDs) == 0 && len(foundIDs) == 0 {
		return []models.ItemMatch{}, nil
	}

	or := []bson.M{}
	if len(lostIDs) > 0 {
		or = append(or, bson.M{"lost_item_id": bson.M{"$in": lostIDs}})
	}
	if len(foundIDs) > 0 {
		or = append(or, bson.M{"found_item_id": bson.M{"$in": foundIDs}})
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"$or": or}, findOptions)
	if err != nil {
		return nil, err
	}
	var matches []models.ItemMatch
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// CountMatchesByStatus counts matches in one status.
func (r *MongoMatchRepository) CountMatchesByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// CountMatchesSince counts matches created at or after the cutoff.
func (r *MongoMatchRepository) CountMatchesSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}
