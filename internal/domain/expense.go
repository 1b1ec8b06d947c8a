package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense. CategoryName is populated
// from the joined category row when the category link is set.
type Expense struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	CategoryID   *int32          `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	ReceiptURL   *string         `json:"receiptUrl,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ExpenseSort identifies a sort order for expense listings
type ExpenseSort string

const (
	SortDateAsc      ExpenseSort = "date_asc"
	SortDateDesc     ExpenseSort = "date_desc"
	SortAmountAsc    ExpenseSort = "amount_asc"
	SortAmountDesc   ExpenseSort = "amount_desc"
	SortCategoryAsc  ExpenseSort = "category_asc"
	SortCategoryDesc ExpenseSort = "category_desc"
)

// ExpenseFilters narrows expense listings and exports
type ExpenseFilters struct {
	CategoryID *int32
	Year       *int
	Month      *int
	Search     string
	Sort       ExpenseSort
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginatedExpenses is a page of expense listings
type PaginatedExpenses struct {
	Data       []*Expense `json:"data"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"pageSize"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int32      `json:"totalPages"`
}

// UpdateExpenseData carries the editable fields of an expense
type UpdateExpenseData struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  *int32
	Notes       *string
}

// ExpenseRepository defines expense persistence operations
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(userID uuid.UUID, id int32) (*Expense, error)
	GetByUser(userID uuid.UUID, filters *ExpenseFilters) (*PaginatedExpenses, error)
	GetAllFiltered(userID uuid.UUID, filters *ExpenseFilters) ([]*Expense, error)
	GetByUserAndDateRange(userID uuid.UUID, start, end time.Time) ([]*Expense, error)
	Update(userID uuid.UUID, id int32, data *UpdateExpenseData) (*Expense, error)
	SetReceiptURL(userID uuid.UUID, id int32, receiptURL *string) error
	Delete(userID uuid.UUID, id int32) error
}
