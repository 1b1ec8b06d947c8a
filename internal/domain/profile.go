package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default values used when a profile is lazily created on first access
const (
	DefaultLimitPercentage = 50
	DefaultReceiveAlerts   = true
)

// Profile holds a user's financial settings (one row per user)
type Profile struct {
	UserID          uuid.UUID       `json:"userId"`
	MonthlySalary   decimal.Decimal `json:"monthlySalary"`
	LimitPercentage int             `json:"limitPercentage"`
	ReceiveAlerts   bool            `json:"receiveAlerts"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// UpdateProfileData carries the editable financial settings
type UpdateProfileData struct {
	MonthlySalary   decimal.Decimal
	LimitPercentage int
	ReceiveAlerts   bool
}

// ProfileRepository defines profile persistence operations.
// GetOrCreate must be safe under concurrent first requests for the same
// user (unique owner key plus insert-on-conflict).
type ProfileRepository interface {
	GetByUser(userID uuid.UUID) (*Profile, error)
	GetOrCreate(userID uuid.UUID) (*Profile, error)
	Update(userID uuid.UUID, data *UpdateProfileData) (*Profile, error)
}
