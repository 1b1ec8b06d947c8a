package service

import (
	"testing"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fixed reference instant: mid-March 2025
var dashNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func int32Ptr(v int32) *int32 { return &v }

func expenseOn(userID uuid.UUID, date time.Time, amount string, categoryID *int32, categoryName *string) *domain.Expense {
	return &domain.Expense{
		UserID:       userID,
		Description:  "test expense",
		Amount:       decimal.RequireFromString(amount),
		Date:         date,
		CategoryID:   categoryID,
		CategoryName: categoryName,
	}
}

func profileWith(userID uuid.UUID, salary string, pct int) *domain.Profile {
	return &domain.Profile{
		UserID:          userID,
		MonthlySalary:   decimal.RequireFromString(salary),
		LimitPercentage: pct,
		ReceiveAlerts:   true,
	}
}

func TestComputeDashboard_Summary(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		expenses       []*domain.Expense
		profile        *domain.Profile
		wantTotal      string
		wantLimit      string
		wantUsed       string
		wantAlertLevel domain.AlertLevel
	}{
		{
			name:           "no profile yields zero limit and no alert",
			expenses:       []*domain.Expense{expenseOn(userID, dashNow, "300.00", nil, nil)},
			profile:        nil,
			wantTotal:      "300.00",
			wantLimit:      "0.00",
			wantUsed:       "0.00",
			wantAlertLevel: domain.AlertNone,
		},
		{
			name:           "zero salary yields zero limit and no alert",
			expenses:       []*domain.Expense{expenseOn(userID, dashNow, "300.00", nil, nil)},
			profile:        profileWith(userID, "0", 50),
			wantTotal:      "300.00",
			wantLimit:      "0.00",
			wantUsed:       "0.00",
			wantAlertLevel: domain.AlertNone,
		},
		{
			name:           "salary 1200 at 50 percent with 500 spent is a warning",
			expenses:       []*domain.Expense{expenseOn(userID, dashNow, "500.00", nil, nil)},
			profile:        profileWith(userID, "1200", 50),
			wantTotal:      "500.00",
			wantLimit:      "600.00",
			wantUsed:       "83.33",
			wantAlertLevel: domain.AlertWarning,
		},
		{
			name:           "salary 1200 at 50 percent with 650 spent is severe",
			expenses:       []*domain.Expense{expenseOn(userID, dashNow, "650.00", nil, nil)},
			profile:        profileWith(userID, "1200", 50),
			wantTotal:      "650.00",
			wantLimit:      "600.00",
			wantUsed:       "108.33",
			wantAlertLevel: domain.AlertSevere,
		},
		{
			name:           "exactly 80 percent stays at none",
			expenses:       []*domain.Expense{expenseOn(userID, dashNow, "480.00", nil, nil)},
			profile:        profileWith(userID, "1200", 50),
			wantTotal:      "480.00",
			wantLimit:      "600.00",
			wantUsed:       "80.00",
			wantAlertLevel: domain.AlertNone,
		},
		{
			name:           "exactly 100 percent stays at warning",
			expenses:       []*domain.Expense{expenseOn(userID, dashNow, "600.00", nil, nil)},
			profile:        profileWith(userID, "1200", 50),
			wantTotal:      "600.00",
			wantLimit:      "600.00",
			wantUsed:       "100.00",
			wantAlertLevel: domain.AlertWarning,
		},
		{
			name: "previous month expenses are excluded from the total",
			expenses: []*domain.Expense{
				expenseOn(userID, dashNow, "100.00", nil, nil),
				expenseOn(userID, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), "900.00", nil, nil),
			},
			profile:        profileWith(userID, "1200", 50),
			wantTotal:      "100.00",
			wantLimit:      "600.00",
			wantUsed:       "16.67",
			wantAlertLevel: domain.AlertNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDashboard(dashNow, tt.expenses, tt.profile, nil)

			if got := d.Summary.TotalThisMonth.StringFixed(2); got != tt.wantTotal {
				t.Errorf("TotalThisMonth = %s, want %s", got, tt.wantTotal)
			}
			if got := d.Summary.AllowedLimit.StringFixed(2); got != tt.wantLimit {
				t.Errorf("AllowedLimit = %s, want %s", got, tt.wantLimit)
			}
			if got := d.Summary.UsedPercentage.StringFixed(2); got != tt.wantUsed {
				t.Errorf("UsedPercentage = %s, want %s", got, tt.wantUsed)
			}
			if d.Summary.AlertLevel != tt.wantAlertLevel {
				t.Errorf("AlertLevel = %s, want %s", d.Summary.AlertLevel, tt.wantAlertLevel)
			}
		})
	}
}

func TestComputeDashboard_CategoryBreakdown(t *testing.T) {
	userID := uuid.New()

	expenses := []*domain.Expense{
		expenseOn(userID, dashNow, "50.00", int32Ptr(1), strPtr("Groceries")),
		expenseOn(userID, dashNow.AddDate(0, 0, -3), "30.00", int32Ptr(1), strPtr("Groceries")),
		expenseOn(userID, dashNow, "20.00", int32Ptr(2), strPtr("Transport")),
		// Uncategorized: excluded from the breakdown
		expenseOn(userID, dashNow, "99.00", nil, nil),
		// Previous month: excluded
		expenseOn(userID, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), "40.00", int32Ptr(1), strPtr("Groceries")),
	}

	d := ComputeDashboard(dashNow, expenses, nil, nil)

	if len(d.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(d.Categories))
	}
	// Sorted by name
	if d.Categories[0].CategoryName != "Groceries" || d.Categories[0].Total.String() != "80" {
		t.Errorf("Categories[0] = %s %s, want Groceries 80", d.Categories[0].CategoryName, d.Categories[0].Total)
	}
	if d.Categories[1].CategoryName != "Transport" || d.Categories[1].Total.String() != "20" {
		t.Errorf("Categories[1] = %s %s, want Transport 20", d.Categories[1].CategoryName, d.Categories[1].Total)
	}
}

func TestComputeDashboard_Trend(t *testing.T) {
	userID := uuid.New()

	expenses := []*domain.Expense{
		expenseOn(userID, dashNow, "100.00", nil, nil),
		expenseOn(userID, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), "200.00", nil, nil),
		expenseOn(userID, time.Date(2024, time.October, 20, 0, 0, 0, 0, time.UTC), "300.00", nil, nil),
		// Eight months back: outside the window
		expenseOn(userID, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), "999.00", nil, nil),
	}

	d := ComputeDashboard(dashNow, expenses, nil, nil)

	if len(d.Trend) != domain.TrendMonths {
		t.Fatalf("expected %d trend entries, got %d", domain.TrendMonths, len(d.Trend))
	}

	wantLabels := []string{"Oct 2024", "Nov 2024", "Dec 2024", "Jan 2025", "Feb 2025", "Mar 2025"}
	wantTotals := []string{"300", "0", "0", "200", "0", "100"}
	for i, p := range d.Trend {
		if p.Label != wantLabels[i] {
			t.Errorf("Trend[%d].Label = %s, want %s", i, p.Label, wantLabels[i])
		}
		if p.Total.String() != wantTotals[i] {
			t.Errorf("Trend[%d].Total = %s, want %s", i, p.Total, wantTotals[i])
		}
	}

	// Year/month identity must survive label formatting
	if d.Trend[0].Year != 2024 || d.Trend[0].Month != time.October {
		t.Errorf("Trend[0] identity = %d-%d, want 2024-10", d.Trend[0].Year, d.Trend[0].Month)
	}
	if d.Trend[5].Year != 2025 || d.Trend[5].Month != time.March {
		t.Errorf("Trend[5] identity = %d-%d, want 2025-3", d.Trend[5].Year, d.Trend[5].Month)
	}
}

func TestComputeDashboard_BudgetProgress(t *testing.T) {
	userID := uuid.New()

	expenses := []*domain.Expense{
		expenseOn(userID, dashNow, "120.00", int32Ptr(1), strPtr("Groceries")),
		expenseOn(userID, dashNow, "30.00", int32Ptr(1), strPtr("Groceries")),
		expenseOn(userID, dashNow, "75.00", int32Ptr(2), strPtr("Transport")),
		// Previous month spend does not count toward progress
		expenseOn(userID, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), "500.00", int32Ptr(1), strPtr("Groceries")),
	}

	budgets := []*domain.BudgetWithCategory{
		{
			Budget:       domain.Budget{ID: 1, UserID: userID, Year: 2025, Month: 3, CategoryID: 1, Limit: decimal.NewFromInt(200)},
			CategoryName: strPtr("Groceries"),
		},
		{
			Budget:       domain.Budget{ID: 2, UserID: userID, Year: 2025, Month: 3, CategoryID: 2, Limit: decimal.NewFromInt(100)},
			CategoryName: strPtr("Transport"),
		},
		// Unresolvable category: skipped
		{
			Budget: domain.Budget{ID: 3, UserID: userID, Year: 2025, Month: 3, CategoryID: 9, Limit: decimal.NewFromInt(50)},
		},
		// Duplicate budget for the same category appears again with the same spend
		{
			Budget:       domain.Budget{ID: 4, UserID: userID, Year: 2025, Month: 3, CategoryID: 1, Limit: decimal.NewFromInt(300)},
			CategoryName: strPtr("Groceries"),
		},
	}

	d := ComputeDashboard(dashNow, expenses, nil, budgets)

	if len(d.Budgets) != 3 {
		t.Fatalf("expected 3 budget entries, got %d", len(d.Budgets))
	}
	if d.Budgets[0].CategoryName != "Groceries" || d.Budgets[0].Spent.String() != "150" || d.Budgets[0].Limit.String() != "200" {
		t.Errorf("Budgets[0] = %+v, want Groceries spent 150 limit 200", d.Budgets[0])
	}
	if d.Budgets[1].CategoryName != "Transport" || d.Budgets[1].Spent.String() != "75" {
		t.Errorf("Budgets[1] = %+v, want Transport spent 75", d.Budgets[1])
	}
	if d.Budgets[2].CategoryName != "Groceries" || d.Budgets[2].Spent.String() != "150" || d.Budgets[2].Limit.String() != "300" {
		t.Errorf("Budgets[2] = %+v, want duplicate Groceries spent 150 limit 300", d.Budgets[2])
	}
}

func TestComputeDashboard_Deterministic(t *testing.T) {
	userID := uuid.New()

	expenses := []*domain.Expense{
		expenseOn(userID, dashNow, "10.00", int32Ptr(1), strPtr("Groceries")),
		expenseOn(userID, dashNow, "20.00", int32Ptr(2), strPtr("Transport")),
	}
	profile := profileWith(userID, "1000", 40)

	first := ComputeDashboard(dashNow, expenses, profile, nil)
	second := ComputeDashboard(dashNow, expenses, profile, nil)

	if !first.Summary.TotalThisMonth.Equal(second.Summary.TotalThisMonth) ||
		!first.Summary.AllowedLimit.Equal(second.Summary.AllowedLimit) ||
		!first.Summary.UsedPercentage.Equal(second.Summary.UsedPercentage) ||
		first.Summary.AlertLevel != second.Summary.AlertLevel {
		t.Errorf("summaries differ across identical computations: %+v vs %+v", first.Summary, second.Summary)
	}
	if len(first.Categories) != len(second.Categories) {
		t.Fatalf("category counts differ: %d vs %d", len(first.Categories), len(second.Categories))
	}
	for i := range first.Categories {
		if first.Categories[i].CategoryName != second.Categories[i].CategoryName ||
			!first.Categories[i].Total.Equal(second.Categories[i].Total) {
			t.Errorf("category %d differs across identical computations", i)
		}
	}
}

func TestDashboardService_GetDashboardAt(t *testing.T) {
	userID := uuid.New()

	expenseRepo := testutil.NewMockExpenseRepository()
	profileRepo := testutil.NewMockProfileRepository()
	budgetRepo := testutil.NewMockBudgetRepository()

	expenseRepo.AddExpense(&domain.Expense{
		ID:           1,
		UserID:       userID,
		Description:  "Weekly shop",
		Amount:       decimal.NewFromInt(250),
		Date:         dashNow.AddDate(0, 0, -1),
		CategoryID:   int32Ptr(1),
		CategoryName: strPtr("Groceries"),
	})
	profileRepo.AddProfile(profileWith(userID, "1000", 50))
	budgetRepo.SetCategoryName(1, "Groceries")
	budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Year: 2025, Month: 3, CategoryID: 1, Limit: decimal.NewFromInt(400),
	})

	svc := NewDashboardService(expenseRepo, profileRepo, budgetRepo)

	d, err := svc.GetDashboardAt(userID, dashNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Summary.TotalThisMonth.String() != "250" {
		t.Errorf("TotalThisMonth = %s, want 250", d.Summary.TotalThisMonth)
	}
	if d.Summary.AllowedLimit.String() != "500" {
		t.Errorf("AllowedLimit = %s, want 500", d.Summary.AllowedLimit)
	}
	if d.Summary.AlertLevel != domain.AlertNone {
		t.Errorf("AlertLevel = %s, want none", d.Summary.AlertLevel)
	}
	if len(d.Budgets) != 1 || d.Budgets[0].Spent.String() != "250" {
		t.Errorf("budget progress = %+v, want one Groceries entry with spent 250", d.Budgets)
	}
}

func TestDashboardService_MissingProfileIsNotAnError(t *testing.T) {
	userID := uuid.New()

	svc := NewDashboardService(
		testutil.NewMockExpenseRepository(),
		testutil.NewMockProfileRepository(),
		testutil.NewMockBudgetRepository(),
	)

	d, err := svc.GetDashboardAt(userID, dashNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Summary.AllowedLimit.String() != "0" {
		t.Errorf("AllowedLimit = %s, want 0", d.Summary.AllowedLimit)
	}
	if len(d.Trend) != domain.TrendMonths {
		t.Errorf("expected %d trend entries even with no data, got %d", domain.TrendMonths, len(d.Trend))
	}
}
