package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event lifecycle statuses. Transitions are monotonic: an event leaves
// PENDING exactly once and never returns.
const (
	EventPending  = "PENDING"
	EventApproved = "APPROVED"
	EventRejected = "REJECTED"
)

// Event categories.
const (
	CategoryEducation   = "EDUCATION"
	CategoryEnvironment = "ENVIRONMENT"
	CategoryCommunity   = "COMMUNITY"
	CategoryHealth      = "HEALTH"
	CategoryOther       = "OTHER"
)

// IsValidCategory reports whether c is a known event category.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryEducation, CategoryEnvironment, CategoryCommunity, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// Event is a volunteer event created by an event manager and curated by admins.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	StartDate   time.Time          `bson:"start_date" json:"startDate"`
	EndDate     time.Time          `bson:"end_date" json:"endDate"`
	Category    string             `bson:"category" json:"category"`
	Status      string             `bson:"status" json:"status"` // PENDING | APPROVED | REJECTED
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	ManagerID   primitive.ObjectID `bson:"manager_id" json:"managerId"`
	Capacity    *int               `bson:"capacity,omitempty" json:"capacity,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
