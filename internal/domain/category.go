package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a user-defined expense category.
// Names are unique per user (case-sensitive).
type Category struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultCategoryNames is the starter set seeded on request for new users
var DefaultCategoryNames = []string{
	"Groceries",
	"Housing",
	"Transport",
	"Health",
	"Education",
	"Leisure",
	"Shopping",
	"Subscriptions",
	"Insurance",
	"Other",
}

// CategoryRepository defines category persistence operations
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(userID uuid.UUID, id int32) (*Category, error)
	GetAllByUser(userID uuid.UUID) ([]*Category, error)
	Update(userID uuid.UUID, id int32, name string) (*Category, error)
	Delete(userID uuid.UUID, id int32) error
	HasExpenses(userID uuid.UUID, id int32) (bool, error)
}
