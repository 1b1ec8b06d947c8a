package service

import (
	"sort"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Alert thresholds as percentages of the allowed limit. Comparisons are
// strict: exactly 80% stays at none, exactly 100% stays at warning.
var (
	warningThreshold = decimal.NewFromInt(80)
	severeThreshold  = decimal.NewFromInt(100)
)

// DashboardService assembles the dashboard view-model for a user
type DashboardService struct {
	expenseRepo domain.ExpenseRepository
	profileRepo domain.ProfileRepository
	budgetRepo  domain.BudgetRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	expenseRepo domain.ExpenseRepository,
	profileRepo domain.ProfileRepository,
	budgetRepo domain.BudgetRepository,
) *DashboardService {
	return &DashboardService{
		expenseRepo: expenseRepo,
		profileRepo: profileRepo,
		budgetRepo:  budgetRepo,
	}
}

// GetDashboard fetches the user's data and computes the dashboard for now
func (s *DashboardService) GetDashboard(userID uuid.UUID) (*domain.Dashboard, error) {
	return s.GetDashboardAt(userID, time.Now().UTC())
}

// GetDashboardAt fetches the user's data and computes the dashboard for the
// month containing the given instant. All waiting happens here; the
// aggregation itself is pure.
func (s *DashboardService) GetDashboardAt(userID uuid.UUID, now time.Time) (*domain.Dashboard, error) {
	// One window covers every figure: the six trailing calendar months,
	// current month included, half-open at the next month boundary.
	windowStart := util.MonthsBack(now, domain.TrendMonths-1)
	windowEnd := util.NextMonthStart(now)

	expenses, err := s.expenseRepo.GetByUserAndDateRange(userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUser(userID)
	if err != nil && err != domain.ErrProfileNotFound {
		return nil, err
	}

	budgets, err := s.budgetRepo.GetByUserAndMonth(userID, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}

	return ComputeDashboard(now, expenses, profile, budgets), nil
}

// ComputeDashboard derives the dashboard view-model from already-fetched,
// owner-scoped inputs. It is a pure function of its arguments: a nil profile
// is the valid default state, and identical inputs always produce identical
// output.
func ComputeDashboard(
	now time.Time,
	expenses []*domain.Expense,
	profile *domain.Profile,
	budgets []*domain.BudgetWithCategory,
) *domain.Dashboard {
	monthStart := util.MonthStart(now)
	monthEnd := util.NextMonthStart(now)

	total := monthlyTotal(expenses, monthStart, monthEnd)

	return &domain.Dashboard{
		Summary:    computeSummary(total, profile),
		Categories: categoryBreakdown(expenses, now),
		Trend:      monthlyTrend(expenses, now),
		Budgets:    budgetProgress(expenses, budgets, now),
	}
}

// monthlyTotal sums amounts over [start, end), half-open, in UTC
func monthlyTotal(expenses []*domain.Expense, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if !e.Date.Before(start) && e.Date.Before(end) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func computeSummary(total decimal.Decimal, profile *domain.Profile) domain.DashboardSummary {
	summary := domain.DashboardSummary{
		TotalThisMonth: total,
		AllowedLimit:   decimal.Zero,
		UsedPercentage: decimal.Zero,
		AlertLevel:     domain.AlertNone,
	}

	if profile == nil || !profile.MonthlySalary.IsPositive() {
		return summary
	}

	// The percentage is applied as stored; out-of-range values are the
	// settings layer's responsibility to reject.
	summary.AllowedLimit = profile.MonthlySalary.
		Mul(decimal.NewFromInt(int64(profile.LimitPercentage))).
		Div(hundred)

	if summary.AllowedLimit.IsPositive() {
		summary.UsedPercentage = total.Div(summary.AllowedLimit).Mul(hundred)
	}

	switch {
	case summary.UsedPercentage.GreaterThan(severeThreshold):
		summary.AlertLevel = domain.AlertSevere
	case summary.UsedPercentage.GreaterThan(warningThreshold):
		summary.AlertLevel = domain.AlertWarning
	}

	return summary
}

// categoryBreakdown groups the current calendar month's expenses by linked
// category name. Expenses without a category are excluded entirely; the
// result is sorted by name for deterministic output.
func categoryBreakdown(expenses []*domain.Expense, now time.Time) []domain.CategoryBreakdown {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.CategoryName == nil {
			continue
		}
		if !util.SameMonth(e.Date, now.Year(), now.Month()) {
			continue
		}
		totals[*e.CategoryName] = totals[*e.CategoryName].Add(e.Amount)
	}

	breakdown := make([]domain.CategoryBreakdown, 0, len(totals))
	for name, total := range totals {
		breakdown = append(breakdown, domain.CategoryBreakdown{
			CategoryName: name,
			Total:        total,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].CategoryName < breakdown[j].CategoryName
	})
	return breakdown
}

// monthlyTrend buckets expenses into the six calendar months ending at now,
// oldest first. Empty months are present with zero totals.
func monthlyTrend(expenses []*domain.Expense, now time.Time) []domain.TrendPoint {
	trend := make([]domain.TrendPoint, 0, domain.TrendMonths)
	for i := domain.TrendMonths - 1; i >= 0; i-- {
		bucket := util.MonthsBack(now, i)
		year, month := bucket.Year(), bucket.Month()

		total := decimal.Zero
		for _, e := range expenses {
			if util.SameMonth(e.Date, year, month) {
				total = total.Add(e.Amount)
			}
		}

		trend = append(trend, domain.TrendPoint{
			Year:  year,
			Month: month,
			Label: util.MonthLabel(year, month),
			Total: total,
		})
	}
	return trend
}

// budgetProgress produces one entry per current-month budget row with a
// resolvable category. Duplicate budget rows for the same category each
// appear separately, reusing the same spent total.
func budgetProgress(expenses []*domain.Expense, budgets []*domain.BudgetWithCategory, now time.Time) []domain.BudgetProgress {
	progress := make([]domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		if b.CategoryName == nil {
			continue
		}

		spent := decimal.Zero
		for _, e := range expenses {
			if e.CategoryID == nil || *e.CategoryID != b.CategoryID {
				continue
			}
			if util.SameMonth(e.Date, now.Year(), now.Month()) {
				spent = spent.Add(e.Amount)
			}
		}

		progress = append(progress, domain.BudgetProgress{
			CategoryName: *b.CategoryName,
			Limit:        b.Limit,
			Spent:        spent,
		})
	}
	return progress
}
