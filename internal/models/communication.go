package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Communication types and delivery statuses
const (
	CommunicationTypeEmail        = "email"
	CommunicationTypeNotification = "notification"
	CommunicationTypeSystem       = "system"
	CommunicationTypeOther        = "other"

	DeliveryStatusSent    = "sent"
	DeliveryStatusFailed  = "failed"
	DeliveryStatusPending = "pending"
)

// Item type discriminator for communications referencing an item
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// CommunicationHistory logs one outbound email or notification tied to a
// recipient and optionally an item. Created at send time; only delivery
// metadata (open/click timestamps) may change afterward.
type CommunicationHistory struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID     uint                `json:"sender_id" bson:"sender_id"`
	RecipientID  uint                `json:"recipient_id" bson:"recipient_id"`
	ItemID       *primitive.ObjectID `json:"item_id,omitempty" bson:"item_id,omitempty"`
	ItemType     string              `json:"item_type,omitempty" bson:"item_type,omitempty"`
	Subject      string              `json:"subject" bson:"subject"`
	Body         string              `json:"body" bson:"body"`
	Type         string              `json:"type" bson:"type"`
	Status       string              `json:"status" bson:"status"`
	TemplateName string              `json:"template_name,omitempty" bson:"template_name,omitempty"`
	IPAddress    string              `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent    string              `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	OpenedAt     *time.Time          `json:"opened_at,omitempty" bson:"opened_at,omitempty"`
	ClickedAt    *time.Time          `json:"clicked_at,omitempty" bson:"clicked_at,omitempty"`
	SentAt       time.Time           `json:"sent_at" bson:"sent_at"`
}

// SendNotificationRequest defines the request body for sending a notification
// to another user, optionally about a specific item.
type SendNotificationRequest struct {
	UserID   uint   `json:"userId" validate:"required"`
	Subject  string `json:"subject" validate:"required,min=1,max=200"`
	Message  string `json:"message" validate:"required,min=1,max=5000"`
	ItemID   string `json:"itemId,omitempty"`
	ItemType string `json:"itemType,omitempty" validate:"omitempty,oneof=lost found"`
}
