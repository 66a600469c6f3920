package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item categories form a closed set; anything else fails validation.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Accessories",
	"Documents",
	"Keys",
	"Bags",
	"Books",
	"Jewelry",
	"Other",
}

// IsValidCategory reports whether category belongs to the closed category set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Lost item statuses
const (
	LostStatusLost     = "lost"
	LostStatusPending  = "pending"
	LostStatusClaimed  = "claimed"
	LostStatusRejected = "rejected"
	LostStatusResolved = "resolved"
	LostStatusArchived = "archived"
)

// Found item statuses
const (
	FoundStatusPending  = "pending"
	FoundStatusFound    = "found"
	FoundStatusClaimed  = "claimed"
	FoundStatusRejected = "rejected"
	FoundStatusResolved = "resolved"
	FoundStatusArchived = "archived"
)

// VerificationStep is one independently-trackable admin check on an item.
type VerificationStep struct {
	Verified   bool       `json:"verified" bson:"verified"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty"`
	VerifiedBy uint       `json:"verified_by,omitempty" bson:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
}

// VerificationRecord is the per-item checklist. The aggregate is_verified flag
// on the item is NOT derived from these steps; an admin sets it explicitly via
// the update-status operation.
type VerificationRecord struct {
	Photo          VerificationStep `json:"photo" bson:"photo"`
	Location       VerificationStep `json:"location" bson:"location"`
	Description    VerificationStep `json:"description" bson:"description"`
	Category       VerificationStep `json:"category" bson:"category"`
	OwnershipProof VerificationStep `json:"ownership_proof" bson:"ownership_proof"`
}

// VerificationStepTypes lists the accepted stepType values for the admin
// verification endpoint, matching VerificationRecord's bson sub-fields.
var VerificationStepTypes = map[string]string{
	"photo":          "photo",
	"location":       "location",
	"description":    "description",
	"category":       "category",
	"ownershipProof": "ownership_proof",
}

// LostItem represents a belonging a user reported as lost, stored in MongoDB.
type LostItem struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReportedBy   uint               `json:"reported_by" bson:"reported_by"`
	Name         string             `json:"name" bson:"name"`
	Category     string             `json:"category" bson:"category"`
	Description  string             `json:"description" bson:"description"`
	LostLocation string             `json:"lost_location" bson:"lost_location"`
	LostDate     time.Time          `json:"lost_date" bson:"lost_date"`
	ImageURLs    []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	PrimaryImage string             `json:"primary_image,omitempty" bson:"primary_image,omitempty"`
	Status       string             `json:"status" bson:"status"`
	IsVerified   bool               `json:"is_verified" bson:"is_verified"`
	Verification VerificationRecord `json:"verification" bson:"verification"`
	ContactEmail string             `json:"contact_email" bson:"contact_email"`
	ContactPhone string             `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// FoundItem represents a belonging a user reported as found, stored in MongoDB.
// ClaimedBy is set exactly once, when an admin approves a claim.
type FoundItem struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReportedBy    uint               `json:"reported_by" bson:"reported_by"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Description   string             `json:"description" bson:"description"`
	FoundLocation string             `json:"found_location" bson:"found_location"`
	FoundDate     time.Time          `json:"found_date" bson:"found_date"`
	ImageURLs     []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	PrimaryImage  string             `json:"primary_image,omitempty" bson:"primary_image,omitempty"`
	Status        string             `json:"status" bson:"status"`
	IsVerified    bool               `json:"is_verified" bson:"is_verified"`
	Verification  VerificationRecord `json:"verification" bson:"verification"`
	ClaimedBy     uint               `json:"claimed_by,omitempty" bson:"claimed_by,omitempty"`
	ContactEmail  string             `json:"contact_email" bson:"contact_email"`
	ContactPhone  string             `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// StatusUpdate is the stored effect of an admin-facing status label.
// "verified" and "rejected" are pseudo-statuses: they resolve to a base status
// plus an explicit is_verified value rather than being stored literally.
type StatusUpdate struct {
	Status     string
	IsVerified *bool
}

var adminStatusLabels = map[string]StatusUpdate{
	"found":    {Status: FoundStatusFound},
	"claimed":  {Status: FoundStatusClaimed},
	"verified": {Status: FoundStatusFound, IsVerified: boolPtr(true)},
	"rejected": {Status: FoundStatusRejected, IsVerified: boolPtr(false)},
}

// ResolveStatusLabel maps an admin-facing status label to its stored
// representation. ok is false for labels outside the closed set.
func ResolveStatusLabel(label string) (StatusUpdate, bool) {
	u, ok := adminStatusLabels[label]
	return u, ok
}

func boolPtr(b bool) *bool { return &b }

// CreateLostItemRequest defines the request body for reporting a lost item
type CreateLostItemRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=100"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description" validate:"required,min=10,max=2000"`
	LostLocation string   `json:"lostLocation" validate:"required,min=2,max=200"`
	LostDate     string   `json:"lostDate" validate:"required"`
	ImageURLs    []string `json:"imageURLs,omitempty" validate:"omitempty,dive,url"`
	PrimaryImage string   `json:"primaryImage,omitempty" validate:"omitempty,url"`
	ContactEmail string   `json:"contactEmail" validate:"required,email"`
	ContactPhone string   `json:"contactPhone,omitempty" validate:"omitempty,min=5,max=20"`
}

// CreateFoundItemRequest defines the request body for reporting a found item
type CreateFoundItemRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Category      string   `json:"category" validate:"required"`
	Description   string   `json:"description" validate:"required,min=10,max=2000"`
	FoundLocation string   `json:"foundLocation" validate:"required,min=2,max=200"`
	FoundDate     string   `json:"foundDate" validate:"required"`
	ImageURLs     []string `json:"imageURLs,omitempty" validate:"omitempty,dive,url"`
	PrimaryImage  string   `json:"primaryImage,omitempty" validate:"omitempty,url"`
	ContactEmail  string   `json:"contactEmail" validate:"required,email"`
	ContactPhone  string   `json:"contactPhone,omitempty" validate:"omitempty,min=5,max=20"`
}

// UpdateItemStatusRequest defines the admin request for changing item status.
// Status accepts the admin-facing label set, not raw stored statuses.
type UpdateItemStatusRequest struct {
	ItemID string `json:"itemId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=found claimed verified rejected"`
}

// SetVerificationStepRequest defines the admin request for toggling one
// verification sub-step on a found item.
type SetVerificationStepRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	StepType string `json:"stepType" validate:"required"`
	Verified *bool  `json:"verified" validate:"required"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
