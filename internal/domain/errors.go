package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryInUse         = errors.New("category has expenses associated")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidLimit          = errors.New("limit must be zero or positive")
	ErrFutureDate            = errors.New("date cannot be in the future")
	ErrInvalidMonth          = errors.New("month must be between 1 and 12")
	ErrInvalidYear           = errors.New("year must be between 2000 and 2100")
	ErrInvalidPercentage     = errors.New("limit percentage must be between 1 and 100")
	ErrNegativeSalary        = errors.New("salary must be zero or positive")
	ErrDescriptionRequired   = errors.New("description is required")
	ErrDescriptionTooLong    = errors.New("description exceeds maximum length")
	ErrNameRequired          = errors.New("name is required")
	ErrNameTooLong           = errors.New("name exceeds maximum length")
)

// Validation constants
const (
	MaxDescriptionLength  = 120
	MaxCategoryNameLength = 60
	MinYear               = 2000
	MaxYear               = 2100
)
