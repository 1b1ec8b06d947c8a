package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a spending ceiling for one category in one calendar month
type Budget struct {
	ID         int32           `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	CategoryID int32           `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// BudgetWithCategory is a budget row with its category name joined.
// CategoryName is nil when the category link cannot be resolved.
type BudgetWithCategory struct {
	Budget
	CategoryName *string `json:"categoryName,omitempty"`
}

// UpdateBudgetData carries the editable fields of a budget
type UpdateBudgetData struct {
	Year       int
	Month      int
	CategoryID int32
	Limit      decimal.Decimal
}

// BudgetRepository defines budget persistence operations
type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID uuid.UUID, id int32) (*BudgetWithCategory, error)
	GetAllByUser(userID uuid.UUID) ([]*BudgetWithCategory, error)
	GetByUserAndMonth(userID uuid.UUID, year, month int) ([]*BudgetWithCategory, error)
	Update(userID uuid.UUID, id int32, data *UpdateBudgetData) (*Budget, error)
	Delete(userID uuid.UUID, id int32) error
}
