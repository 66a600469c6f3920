package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match types and statuses
const (
	MatchTypeAutomatic = "automatic"
	MatchTypeManual    = "manual"

	MatchStatusPending   = "pending"
	MatchStatusConfirmed = "confirmed"
	MatchStatusRejected  = "rejected"
)

// ItemMatch links one lost item and one found item as a candidate pair.
// Multiple matches may reference the same item; there is no uniqueness
// constraint on the pair.
type ItemMatch struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LostItemID  primitive.ObjectID `json:"lost_item_id" bson:"lost_item_id"`
	FoundItemID primitive.ObjectID `json:"found_item_id" bson:"found_item_id"`
	MatchedBy   uint               `json:"matched_by" bson:"matched_by"`
	MatchType   string             `json:"match_type" bson:"match_type"`
	Status      string             `json:"status" bson:"status"`
	ConfirmedBy uint               `json:"confirmed_by,omitempty" bson:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time         `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateMatchRequest defines the admin request body for pairing a lost item
// with a found item.
type CreateMatchRequest struct {
	LostItemID  string `json:"lostItemId" validate:"required"`
	FoundItemID string `json:"foundItemId" validate:"required"`
	MatchType   string `json:"matchType" validate:"required,oneof=automatic manual"`
}

// ConfirmMatchRequest defines the admin request body for confirming or
// rejecting a pending match.
type ConfirmMatchRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}
