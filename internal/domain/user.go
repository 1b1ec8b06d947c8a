package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user
type User struct {
	ID         uuid.UUID  `json:"id"`
	Auth0ID    string     `json:"-"`
	Email      string     `json:"email"`
	Name       *string    `json:"name,omitempty"`
	PictureURL *string    `json:"pictureUrl,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// UserRepository defines user persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*User, error)
}
