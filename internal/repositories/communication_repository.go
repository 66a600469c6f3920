package repositories

import (
	"context"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommunicationRepository defines the interface for the notification log
type CommunicationRepository interface {
	CreateCommunication(ctx context.Context, comm *models.CommunicationHistory) error
	ListByRecipient(ctx context.Context, recipientID uint, page, limit int) ([]models.CommunicationHistory, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// MongoCommunicationRepository implements CommunicationRepository over the
// communications collection. Records are append-only; nothing mutates them
// after insert except delivery-webhook metadata, which has no API surface
// here.
type MongoCommunicationRepository struct {
	collection *mongo.Collection
}

// NewMongoCommunicationRepository creates a new MongoCommunicationRepository
func NewMongoCommunicationRepository(db *mongo.Database) *MongoCommunicationRepository {
	return &MongoCommunicationRepository{collection: db.Collection("communications")}
}

// CreateCommunication inserts a new communication log entry
func (r *MongoCommunicationRepository) CreateCommunication(ctx context.Context, comm *models.CommunicationHistory) error {
	comm.ID = primitive.NewObjectID()
	if comm.SentAt.IsZero() {
		comm.SentAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, comm)
	return err
}

// ListByRecipient returns a paginated page of communications sent to the
// given user, newest first.
func (r *MongoCommunicationRepository) ListByRecipient(ctx context.Context, recipientID uint, page, limit int) ([]models.CommunicationHistory, int64, error) {
	filter := bson.M{"recipient_id": recipientID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * limit)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	var comms []models.CommunicationHistory
	if err := cursor.All(ctx, &comms); err != nil {
		return nil, 0, err
	}
	return comms, total, nil
}

// CountSince counts communications sent at or after the cutoff.
func (r *MongoCommunicationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"sent_at": bson.M{"$gte": since}})
}
