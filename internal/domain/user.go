package domain

import "time"

const (
	RoleClient  = "client"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Role         string    `bson:"role" json:"role"`
	City         string    `bson:"city" json:"city"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	PasswordHash string    `bson:"hash_password" json:"-"`
}

// ProfilePatch is a partial profile update: nil fields stay as they are.
type ProfilePatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	City      *string `json:"city,omitempty"`
}

func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.City == nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleManager, RoleAdmin:
		return true
	}
	return false
}
