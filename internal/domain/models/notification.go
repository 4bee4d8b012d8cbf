package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifyEventApproved        = "event_approved"
	NotifyEventRejected        = "event_rejected"
	NotifyRegistrationApproved = "registration_approved"
	NotifyRegistrationRejected = "registration_rejected"
	NotifyNewPost              = "new_post"
)

// Notification is a persisted message for one user. Delivery to connected
// clients is handled by the external push gateway; this is only the record
// clients fetch when they reconnect.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"userId"`
	Type      string              `bson:"type" json:"type"`
	Message   string              `bson:"message" json:"message"`
	RefID     *primitive.ObjectID `bson:"ref_id,omitempty" json:"refId,omitempty"`
	Read      bool                `bson:"read" json:"read"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}
