package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration statuses. There is no CANCELLED state: cancelling a
// registration deletes the document.
const (
	RegistrationPending   = "PENDING"
	RegistrationApproved  = "APPROVED"
	RegistrationRejected  = "REJECTED"
	RegistrationCompleted = "COMPLETED"
)

// Registration links a volunteer to an event. At most one document exists
// per (user, event) pair; the events store enforces this with a unique index.
type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	EventID     primitive.ObjectID `bson:"event_id" json:"eventId"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}
