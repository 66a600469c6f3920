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

// ClaimRepository defines the interface for claim data operations
type ClaimRepository interface {
	CreateClaim(ctx context.Context, claim *models.ClaimRequest) error
	GetClaimByID(ctx context.Context, id string) (*models.ClaimRequest, error)
	HasActiveClaim(ctx context.Context, foundItemID primitive.ObjectID, claimantID uint) (bool, error)
	ProcessClaim(ctx context.Context, id, status string, adminID uint, adminNotes string) (*models.ClaimRequest, error)
	CancelClaim(ctx context.Context, id string, reason string) (*models.ClaimRequest, error)
	ListClaims(ctx context.Context, status string, page, limit int) ([]models.ClaimRequest, int64, error)
	ListClaimsByClaimant(ctx context.Context, claimantID uint) ([]models.ClaimRequest, error)
	CountClaimsByStatus(ctx context.Context, status string) (int64, error)
	CountClaimsSince(ctx context.Context, since time.Time) (int64, error)
}

// MongoClaimRepository implements ClaimRepository over the claims collection.
type MongoClaimRepository struct {
	collection *mongo.Collection
}

// NewMongoClaimRepository creates a new MongoClaimRepository
func NewMongoClaimRepository(db *mongo.Database) *MongoClaimRepository {
	return &MongoClaimRepository{collection: db.Collection("claims")}
}

// CreateClaim inserts a new pending claim
func (r *MongoClaimRepository) CreateClaim(ctx context.Context, claim *models.ClaimRequest) error {
	claim.ID = primitive.NewObjectID()
	claim.Status = models.ClaimStatusPending
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = claim.CreatedAt
	_, err := r.collection.InsertOne(ctx, claim)
	return err
}

// GetClaimByID retrieves a claim by ID
func (r *MongoClaimRepository) GetClaimByID(ctx context.Context, id string) (*models.ClaimRequest, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid claim ID format: %w", err)
	}
	var claim models.ClaimRequest
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&claim); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &claim, nil
}

// HasActiveClaim reports whether the claimant already holds a pending or
// approved claim on the found item. Canceled and rejected claims do not block
// a new attempt.
func (r *MongoClaimRepository) HasActiveClaim(ctx context.Context, foundItemID primitive.ObjectID, claimantID uint) (bool, error) {
	filter := bson.M{
		"found_item_id": foundItemID,
		"claimant_id":   claimantID,
		"status":        bson.M{"$in": []string{models.ClaimStatusPending, models.ClaimStatusApproved}},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProcessClaim records the admin decision on a pending claim and returns the
// updated document. Only pending claims match; a terminal claim yields
// ErrConflict so reprocessing fails instead of silently re-applying.
func (r *MongoClaimRepository) ProcessClaim(ctx context.Context, id, status string, adminID uint, adminNotes string) (*models.ClaimRequest, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid claim ID format: %w", err)
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":       status,
		"processed_by": adminID,
		"processed_at": now,
		"admin_notes":  adminNotes,
		"updated_at":   now,
	}}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var claim models.ClaimRequest
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "status": models.ClaimStatusPending},
		update, opts).Decode(&claim)
	if err == nil {
		return &claim, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Distinguish a missing claim from one already processed.
	count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
	if countErr != nil {
		return nil, countErr
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConflict
}

// CancelClaim withdraws a pending claim on behalf of its claimant. Terminal
// claims yield ErrConflict.
func (r *MongoClaimRepository) CancelClaim(ctx context.Context, id string, reason string) (*models.ClaimRequest, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid claim ID format: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"status":              models.ClaimStatusCanceled,
		"cancellation_reason": reason,
		"updated_at":          time.Now(),
	}}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var claim models.ClaimRequest
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "status": models.ClaimStatusPending},
		update, opts).Decode(&claim)
	if err == nil {
		return &claim, nil
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

// ListClaims returns a paginated page of claims, optionally filtered by
// status, newest first.
func (r *MongoClaimRepository) ListClaims(ctx context.Context, status string, page, limit int) ([]models.ClaimRequest, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * limit)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	var claims []models.ClaimRequest
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// ListClaimsByClaimant returns every claim filed by the given user, newest
// first.
func (r *MongoClaimRepository) ListClaimsByClaimant(ctx context.Context, claimantID uint) ([]models.ClaimRequest, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"claimant_id": claimantID}, findOptions)
	if err != nil {
		return nil, err
	}
	var claims []models.ClaimRequest
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// CountClaimsByStatus counts claims in one status.
func (r *MongoClaimRepository) CountClaimsByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// CountClaimsSince counts claims created at or after the cutoff.
func (r *MongoClaimRepository) CountClaimsSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}
