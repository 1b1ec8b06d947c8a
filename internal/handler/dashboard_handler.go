package handler

import (
	"net/http"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// DashboardSummaryResponse represents the headline dashboard figures
type DashboardSummaryResponse struct {
	TotalThisMonth string `json:"totalThisMonth"`
	AllowedLimit   string `json:"allowedLimit"`
	UsedPercentage string `json:"usedPercentage"`
	AlertLevel     string `json:"alertLevel"`
}

// CategoryBreakdownResponse represents one category's spend this month
type CategoryBreakdownResponse struct {
	CategoryName string `json:"categoryName"`
	Total        string `json:"total"`
}

// TrendPointResponse represents one month of the spend trend
type TrendPointResponse struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Total string `json:"total"`
}

// BudgetProgressResponse represents one budget's limit versus spend
type BudgetProgressResponse struct {
	CategoryName string `json:"categoryName"`
	Limit        string `json:"limit"`
	Spent        string `json:"spent"`
}

// DashboardResponse represents the full dashboard API response
type DashboardResponse struct {
	Summary    DashboardSummaryResponse    `json:"summary"`
	Categories []CategoryBreakdownResponse `json:"categories"`
	Trend      []TrendPointResponse        `json:"trend"`
	Budgets    []BudgetProgressResponse    `json:"budgets"`
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	dashboard, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard")
		return NewInternalError(c, "Failed to get dashboard")
	}

	return c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	categories := make([]CategoryBreakdownResponse, len(d.Categories))
	for i, cb := range d.Categories {
		categories[i] = CategoryBreakdownResponse{
			CategoryName: cb.CategoryName,
			Total:        cb.Total.StringFixed(2),
		}
	}

	trend := make([]TrendPointResponse, len(d.Trend))
	for i, tp := range d.Trend {
		trend[i] = TrendPointResponse{
			Year:  tp.Year,
			Month: int(tp.Month),
			Label: tp.Label,
			Total: tp.Total.StringFixed(2),
		}
	}

	budgets := make([]BudgetProgressResponse, len(d.Budgets))
	for i, bp := range d.Budgets {
		budgets[i] = BudgetProgressResponse{
			CategoryName: bp.CategoryName,
			Limit:        bp.Limit.StringFixed(2),
			Spent:        bp.Spent.StringFixed(2),
		}
	}

	return DashboardResponse{
		Summary: DashboardSummaryResponse{
			TotalThisMonth: d.Summary.TotalThisMonth.StringFixed(2),
			AllowedLimit:   d.Summary.AllowedLimit.StringFixed(2),
			UsedPercentage: d.Summary.UsedPercentage.StringFixed(2),
			AlertLevel:     string(d.Summary.AlertLevel),
		},
		Categories: categories,
		Trend:      trend,
		Budgets:    budgets,
	}
}
