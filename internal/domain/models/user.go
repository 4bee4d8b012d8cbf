package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Stored verbatim in the role field and in session data.
const (
	RoleAdmin        = "ADMIN"
	RoleEventManager = "EVENT_MANAGER"
	RoleVolunteer    = "VOLUNTEER"
)

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEventManager, RoleVolunteer:
		return true
	}
	return false
}

// User represents admins, event managers, and volunteers.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"fullName"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // ADMIN | EVENT_MANAGER | VOLUNTEER
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ManagerSummary is the trimmed manager shape embedded in event payloads.
type ManagerSummary struct {
	ID       primitive.ObjectID `json:"id"`
	FullName string             `json:"fullName"`
}
