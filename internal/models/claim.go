package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claim statuses. Transitions are one-way from pending: an admin moves a claim
// to approved or rejected, the claimant may move it to canceled. approved and
// rejected are terminal.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
	ClaimStatusCanceled = "canceled"
)

// ClaimRequest records a user's assertion of ownership over a found item,
// pending admin adjudication. Stored in MongoDB.
type ClaimRequest struct {
	ID                 primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	FoundItemID        primitive.ObjectID  `json:"found_item_id" bson:"found_item_id"`
	LostItemID         *primitive.ObjectID `json:"lost_item_id,omitempty" bson:"lost_item_id,omitempty"`
	ClaimantID         uint                `json:"claimant_id" bson:"claimant_id"`
	OwnershipProof     string              `json:"ownership_proof" bson:"ownership_proof"`
	ContactDetails     string              `json:"contact_details" bson:"contact_details"`
	Reason             string              `json:"reason,omitempty" bson:"reason,omitempty"`
	Status             string              `json:"status" bson:"status"`
	ProcessedBy        uint                `json:"processed_by,omitempty" bson:"processed_by,omitempty"`
	ProcessedAt        *time.Time          `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	AdminNotes         string              `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" bson:"updated_at"`
}

// Terminal reports whether the claim has reached a final status.
func (c *ClaimRequest) Terminal() bool {
	return c.Status == ClaimStatusApproved || c.Status == ClaimStatusRejected || c.Status == ClaimStatusCanceled
}

// FileClaimRequest defines the request body for claiming a found item
type FileClaimRequest struct {
	FoundItemID    string `json:"foundItemId" validate:"required"`
	LostItemID     string `json:"lostItemId,omitempty"`
	OwnershipProof string `json:"ownershipProof" validate:"required,min=10,max=2000"`
	ContactDetails string `json:"contactDetails" validate:"required,min=5,max=500"`
	Reason         string `json:"reason,omitempty" validate:"omitempty,max=2000"`
}

// ProcessClaimRequest defines the admin request body for approving or
// rejecting a pending claim.
type ProcessClaimRequest struct {
	ClaimID    string `json:"claimId" validate:"required"`
	Approved   *bool  `json:"approved" validate:"required"`
	AdminNotes string `json:"adminNotes,omitempty" validate:"omitempty,max=2000"`
}

// CancelClaimRequest defines the claimant request body for withdrawing a
// pending claim.
type CancelClaimRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}
