package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Item kinds accepted by search filters
const (
	KindLost  = "lost"
	KindFound = "found"
	KindAll   = "all"
)

// ItemSearchFilter collects the query parameters of the public item search.
type ItemSearchFilter struct {
	Query     string
	Category  string
	Kind      string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ItemListing is the kind-independent shape returned by combined searches.
type ItemListing struct {
	ID           primitive.ObjectID `json:"id"`
	Kind         string             `json:"kind"`
	ReportedBy   uint               `json:"reported_by"`
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	Description  string             `json:"description"`
	Location     string             `json:"location"`
	Date         time.Time          `json:"date"`
	PrimaryImage string             `json:"primary_image,omitempty"`
	Status       string             `json:"status"`
	IsVerified   bool               `json:"is_verified"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SearchResult pairs a listing page with its total count across collections.
type SearchResult struct {
	Items []ItemListing
	Total int64
}

// ItemStatistics holds the per-status counts for admin views.
type ItemStatistics struct {
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Claimed  int64 `json:"claimed"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// ItemRepository defines the interface for lost/found item data operations
type ItemRepository interface {
	CreateLostItem(ctx context.Context, item *models.LostItem) error
	CreateFoundItem(ctx context.Context, item *models.FoundItem) error
	GetLostItemByID(ctx context.Context, id string) (*models.LostItem, error)
	GetFoundItemByID(ctx context.Context, id string) (*models.FoundItem, error)
	SearchItems(ctx context.Context, filter ItemSearchFilter) (*SearchResult, error)
	ListFoundItems(ctx context.Context, filter ItemSearchFilter) ([]models.FoundItem, int64, error)
	UpdateFoundItemStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.FoundItem, error)
	MarkFoundItemClaimed(ctx context.Context, id string, claimantID uint) error
	SetVerificationStep(ctx context.Context, id, stepField string, step models.VerificationStep) error
	GetVerification(ctx context.Context, id string) (*models.FoundItem, error)
	ListOwnedItemIDs(ctx context.Context, userID uint) (lost, found []primitive.ObjectID, err error)
	GetStatistics(ctx context.Context) (*ItemStatistics, error)
	CountCreatedSince(ctx context.Context, kind string, since time.Time) (int64, error)
	CountByCategorySince(ctx context.Context, category string, since time.Time) (int64, error)
}

// MongoItemRepository implements ItemRepository over the lost_items and
// found_items collections.
type MongoItemRepository struct {
	lost  *mongo.Collection
	found *mongo.Collection
}

// NewMongoItemRepository creates a new MongoItemRepository
func NewMongoItemRepository(db *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{
		lost:  db.Collection("lost_items"),
		found: db.Collection("found_items"),
	}
}

// CreateLostItem inserts a new lost item report
func (r *MongoItemRepository) CreateLostItem(ctx context.Context, item *models.LostItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	_, err := r.lost.InsertOne(ctx, item)
	return err
}

// CreateFoundItem inserts a new found item report
func (r *MongoItemRepository) CreateFoundItem(ctx context.Context, item *models.FoundItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	_, err := r.found.InsertOne(ctx, item)
	return err
}

// GetLostItemByID retrieves a lost item by ID
func (r *MongoItemRepository) GetLostItemByID(ctx context.Context, id string) (*models.LostItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format: %w", err)
	}
	var item models.LostItem
	if err := r.lost.FindOne(ctx, bson.M{"_id": objID}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetFoundItemByID retrieves a found item by ID
func (r *MongoItemRepository) GetFoundItemByID(ctx context.Context, id string) (*models.FoundItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format: %w", err)
	}
	var item models.FoundItem
	if err := r.found.FindOne(ctx, bson.M{"_id": objID}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// buildItemFilter translates an ItemSearchFilter into a Mongo filter document.
// locationField and dateField name the kind-specific bson fields.
func buildItemFilter(f ItemSearchFilter, locationField, dateField string) bson.M {
	filter := bson.M{}
	if f.Query != "" {
		regex := bson.M{"$regex": f.Query, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{locationField: regex},
		}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.DateFrom != nil || f.DateTo != nil {
		dateRange := bson.M{}
		if f.DateFrom != nil {
			dateRange["$gte"] = *f.DateFrom
		}
		if f.DateTo != nil {
			dateRange["$lte"] = *f.DateTo
		}
		filter[dateField] = dateRange
	}
	return filter
}

// sortSpec translates sortBy/sortOrder into a Mongo sort document.
// Default is newest-first by creation time.
func sortSpec(sortBy, sortOrder string) bson.D {
	field := "created_at"
	order := -1
	switch sortBy {
	case "name", "alphabetical":
		field = "name"
		order = 1
	case "oldest":
		order = 1
	case "date", "newest", "":
		// keep defaults
	default:
		field = sortBy
	}
	if sortOrder == "asc" {
		order = 1
	} else if sortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

func lostListing(item models.LostItem) ItemListing {
	return ItemListing{
		ID:           item.ID,
		Kind:         KindLost,
		ReportedBy:   item.ReportedBy,
		Name:         item.Name,
		Category:     item.Category,
		Description:  item.Description,
		Location:     item.LostLocation,
		Date:         item.LostDate,
		PrimaryImage: item.PrimaryImage,
		Status:       item.Status,
		IsVerified:   item.IsVerified,
		CreatedAt:    item.CreatedAt,
	}
}

func foundListing(item models.FoundItem) ItemListing {
	return ItemListing{
		ID:           item.ID,
		Kind:         KindFound,
		ReportedBy:   item.ReportedBy,
		Name:         item.Name,
		Category:     item.Category,
		Description:  item.Description,
		Location:     item.FoundLocation,
		Date:         item.FoundDate,
		PrimaryImage: item.PrimaryImage,
		Status:       item.Status,
		IsVerified:   item.IsVerified,
		CreatedAt:    item.CreatedAt,
	}
}

// SearchItems searches lost and/or found items with offset pagination. For
// kind=all both collections are queried with a window covering the requested
// page, merged by the sort key, then sliced; totals are summed across both.
func (r *MongoItemRepository) SearchItems(ctx context.Context, filter ItemSearchFilter) (*SearchResult, error) {
	skip := int64((filter.Page - 1) * filter.Limit)
	limit := int64(filter.Limit)
	sortDoc := sortSpec(filter.SortBy, filter.SortOrder)

	var listings []ItemListing
	var total int64

	if filter.Kind == KindLost || filter.Kind == KindAll || filter.Kind == "" {
		mongoFilter := buildItemFilter(filter, "lost_location", "lost_date")
		count, err := r.lost.CountDocuments(ctx, mongoFilter)
		if err != nil {
			return nil, err
		}
		total += count

		// For the combined search, fetch the whole window up to the page end
		// so the merge can re-sort across collections.
		findOptions := options.Find().SetSort(sortDoc).SetLimit(skip + limit)
		cursor, err := r.lost.Find(ctx, mongoFilter, findOptions)
		if err != nil {
			return nil, err
		}
		var items []models.LostItem
		if err := cursor.All(ctx, &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			listings = append(listings, lostListing(item))
		}
	}

	if filter.Kind == KindFound || filter.Kind == KindAll || filter.Kind == "" {
		mongoFilter := buildItemFilter(filter, "found_location", "found_date")
		count, err := r.found.CountDocuments(ctx, mongoFilter)
		if err != nil {
			return nil, err
		}
		total += count

		findOptions := options.Find().SetSort(sortDoc).SetLimit(skip + limit)
		cursor, err := r.found.Find(ctx, mongoFilter, findOptions)
		if err != nil {
			return nil, err
		}
		var items []models.FoundItem
		if err := cursor.All(ctx, &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			listings = append(listings, foundListing(item))
		}
	}

	sortListings(listings, filter.SortBy, filter.SortOrder)

	if int(skip) >= len(listings) {
		return &SearchResult{Items: []ItemListing{}, Total: total}, nil
	}
	end := int(skip) + filter.Limit
	if end > len(listings) {
		end = len(listings)
	}
	return &SearchResult{Items: listings[skip:end], Total: total}, nil
}

// sortListings re-sorts a merged lost+found window with the same ordering the
// per-collection queries used.
func sortListings(listings []ItemListing, sortBy, sortOrder string) {
	asc := sortOrder == "asc" || sortBy == "oldest"
	byName := sortBy == "name" || sortBy == "alphabetical"
	if byName && sortOrder != "desc" {
		asc = true
	}
	sort.SliceStable(listings, func(i, j int) bool {
		if byName {
			if asc {
				return listings[i].Name < listings[j].Name
			}
			return listings[i].Name > listings[j].Name
		}
		if asc {
			return listings[i].CreatedAt.Before(listings[j].CreatedAt)
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

// ListFoundItems returns a filtered, paginated page of found items for the
// admin listing, with the total match count.
func (r *MongoItemRepository) ListFoundItems(ctx context.Context, filter ItemSearchFilter) ([]models.FoundItem, int64, error) {
	mongoFilter := buildItemFilter(filter, "found_location", "found_date")
	total, err := r.found.CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	findOptions := options.Find().
		SetSort(sortSpec(filter.SortBy, filter.SortOrder)).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))
	cursor, err := r.found.Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	var items []models.FoundItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateFoundItemStatus applies a resolved admin status update to a found
// item and returns the updated document.
func (r *MongoItemRepository) UpdateFoundItemStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.FoundItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format: %w", err)
	}

	set := bson.M{
		"status":     update.Status,
		"updated_at": time.Now(),
	}
	if update.IsVerified != nil {
		set["is_verified"] = *update.IsVerified
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var item models.FoundItem
	err = r.found.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// MarkFoundItemClaimed transitions a found item to claimed and records the
// claimant. Called from claim approval only.
func (r *MongoItemRepository) MarkFoundItemClaimed(ctx context.Context, id string, claimantID uint) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid item ID format: %w", err)
	}
	update := bson.M{"$set": bson.M{
		"status":     models.FoundStatusClaimed,
		"claimed_by": claimantID,
		"updated_at": time.Now(),
	}}
	res, err := r.found.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetVerificationStep updates one verification sub-field on a found item.
// The aggregate is_verified flag is deliberately left untouched; it only
// changes through UpdateFoundItemStatus.
func (r *MongoItemRepository) SetVerificationStep(ctx context.Context, id, stepField string, step models.VerificationStep) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid item ID format: %w", err)
	}
	update := bson.M{"$set": bson.M{
		"verification." + stepField: step,
		"updated_at":                time.Now(),
	}}
	res, err := r.found.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetVerification returns the found item carrying its verification sub-record.
func (r *MongoItemRepository) GetVerification(ctx context.Context, id string) (*models.FoundItem, error) {
	return r.GetFoundItemByID(ctx, id)
}

// ListOwnedItemIDs returns the IDs of every lost and found item reported by
// the given user. Used to resolve which matches touch a user's items.
func (r *MongoItemRepository) ListOwnedItemIDs(ctx context.Context, userID uint) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	projection := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.lost.Find(ctx, bson.M{"reported_by": userID}, projection)
	if err != nil {
		return nil, nil, err
	}
	var lostDocs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &lostDocs); err != nil {
		return nil, nil, err
	}

	cursor, err = r.found.Find(ctx, bson.M{"reported_by": userID}, projection)
	if err != nil {
		return nil, nil, err
	}
	var foundDocs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &foundDocs); err != nil {
		return nil, nil, err
	}

	lostIDs := make([]primitive.ObjectID, len(lostDocs))
	for i, d := range lostDocs {
		lostIDs[i] = d.ID
	}
	foundIDs := make([]primitive.ObjectID, len(foundDocs))
	for i, d := range foundDocs {
		foundIDs[i] = d.ID
	}
	return lostIDs, foundIDs, nil
}

// GetStatistics computes per-status counts over found items with count
// queries; nothing is maintained incrementally.
func (r *MongoItemRepository) GetStatistics(ctx context.Context) (*ItemStatistics, error) {
	stats := &ItemStatistics{}
	var err error

	if stats.Pending, err = r.found.CountDocuments(ctx, bson.M{"status": models.FoundStatusPending}); err != nil {
		return nil, err
	}
	if stats.Verified, err = r.found.CountDocuments(ctx, bson.M{"is_verified": true}); err != nil {
		return nil, err
	}
	if stats.Claimed, err = r.found.CountDocuments(ctx, bson.M{"status": models.FoundStatusClaimed}); err != nil {
		return nil, err
	}
	if stats.Rejected, err = r.found.CountDocuments(ctx, bson.M{"status": models.FoundStatusRejected}); err != nil {
		return nil, err
	}
	if stats.Total, err = r.found.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	return stats, nil
}

// CountCreatedSince counts items of one kind created at or after the cutoff.
func (r *MongoItemRepository) CountCreatedSince(ctx context.Context, kind string, since time.Time) (int64, error) {
	filter := bson.M{"created_at": bson.M{"$gte": since}}
	switch kind {
	case KindLost:
		return r.lost.CountDocuments(ctx, filter)
	case KindFound:
		return r.found.CountDocuments(ctx, filter)
	default:
		lost, err := r.lost.CountDocuments(ctx, filter)
		if err != nil {
			return 0, err
		}
		found, err := r.found.CountDocuments(ctx, filter)
		if err != nil {
			return 0, err
		}
		return lost + found, nil
	}
}

// CountByCategorySince counts lost+found items of one category created at or
// after the cutoff.
func (r *MongoItemRepository) CountByCategorySince(ctx context.Context, category string, since time.Time) (int64, error) {
	filter := bson.M{
		"category":   category,
		"created_at": bson.M{"$gte": since},
	}
	lost, err := r.lost.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	found, err := r.found.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return lost + found, nil
}
