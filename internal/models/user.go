package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Login methods. The method determines which identity fields are mandatory:
// password exists only on email/password accounts, googleId only on
// Google-linked ones.
const (
	LoginMethodEmail  = "email"
	LoginMethodGoogle = "google"
)

// User is the persisted identity record, keyed by lowercase email.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password,omitempty" json:"-"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LoginMethod    string             `bson:"loginMethod" json:"loginMethod"`
	GoogleID       string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
	// IsActive is persisted for parity with the stored schema; no read path
	// consults it yet.
	IsActive bool `bson:"isActive" json:"isActive"`
}

// PublicUser is the subset of User safe to return from auth endpoints.
type PublicUser struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	LoginMethod    string    `json:"loginMethod"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Public projects the record onto its client-visible fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID.Hex(),
		Email:          u.Email,
		Name:           u.Name,
		LoginMethod:    u.LoginMethod,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}
