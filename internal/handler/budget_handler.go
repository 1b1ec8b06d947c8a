package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID           int32   `json:"id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	CategoryID   int32   `json:"categoryId"`
	CategoryName *string `json:"categoryName,omitempty"`
	Limit        string  `json:"limit"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	CategoryID int32  `json:"categoryId"`
	Limit      string `json:"limit"`
}

func toBudgetResponse(b *domain.Budget, categoryName *string) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID,
		Year:         b.Year,
		Month:        b.Month,
		CategoryID:   b.CategoryID,
		CategoryName: categoryName,
		Limit:        b.Limit.StringFixed(2),
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /api/v1/budgets
func (h *BudgetHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.budgetService.List(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	result := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = toBudgetResponse(&b.Budget, b.CategoryName)
	}

	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/budgets/:id
func (h *BudgetHandler) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(&budget.Budget, budget.CategoryName))
}

// Create handles POST /api/v1/budgets
func (h *BudgetHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "limit", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.Create(userID, service.CreateBudgetInput{
		Year:       req.Year,
		Month:      req.Month,
		CategoryID: req.CategoryID,
		Limit:      limit,
	})
	if err != nil {
		if verrs := budgetValidationErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category not found"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budget.ID).Msg("Budget created")

	return c.JSON(http.StatusCreated, toBudgetResponse(budget, nil))
}

// Update handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "limit", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.Update(userID, id, &domain.UpdateBudgetData{
		Year:       req.Year,
		Month:      req.Month,
		CategoryID: req.CategoryID,
		Limit:      limit,
	})
	if err != nil {
		if verrs := budgetValidationErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category not found"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget, nil))
}

// Delete handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	return c.NoContent(http.StatusNoContent)
}

// budgetValidationErrors maps domain validation errors to field errors.
// Returns nil when the error is not a validation error.
func budgetValidationErrors(err error) []ValidationError {
	switch {
	case errors.Is(err, domain.ErrInvalidYear):
		return []ValidationError{{Field: "year", Message: fmt.Sprintf("Year must be between %d and %d", domain.MinYear, domain.MaxYear)}}
	case errors.Is(err, domain.ErrInvalidMonth):
		return []ValidationError{{Field: "month", Message: "Month must be between 1 and 12"}}
	case errors.Is(err, domain.ErrInvalidLimit):
		return []ValidationError{{Field: "limit", Message: "Limit cannot be negative"}}
	default:
		return nil
	}
}
