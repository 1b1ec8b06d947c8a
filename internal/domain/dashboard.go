package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertLevel classifies how close the month's spend is to the allowed limit.
// The three states are mutually exclusive.
type AlertLevel string

const (
	AlertNone    AlertLevel = "none"
	AlertWarning AlertLevel = "warning"
	AlertSevere  AlertLevel = "severe"
)

// TrendMonths is the number of calendar months covered by the spend trend,
// the current month included
const TrendMonths = 6

// DashboardSummary contains the headline dashboard figures
type DashboardSummary struct {
	TotalThisMonth decimal.Decimal `json:"totalThisMonth"`
	AllowedLimit   decimal.Decimal `json:"allowedLimit"`
	UsedPercentage decimal.Decimal `json:"usedPercentage"`
	AlertLevel     AlertLevel      `json:"alertLevel"`
}

// CategoryBreakdown is the current month's spend for one category
type CategoryBreakdown struct {
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// TrendPoint is the total spend for one calendar month of the trailing trend
type TrendPoint struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// BudgetProgress pairs a category's configured monthly ceiling with the
// actual spend in that category for the same month
type BudgetProgress struct {
	CategoryName string          `json:"categoryName"`
	Limit        decimal.Decimal `json:"limit"`
	Spent        decimal.Decimal `json:"spent"`
}

// Dashboard is the full dashboard view-model: plain data, no behavior
type Dashboard struct {
	Summary    DashboardSummary    `json:"summary"`
	Categories []CategoryBreakdown `json:"categories"`
	Trend      []TrendPoint        `json:"trend"`
	Budgets    []BudgetProgress    `json:"budgets"`
}
