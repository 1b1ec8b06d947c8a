package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	exportService  *service.ExportService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, exportService *service.ExportService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		exportService:  exportService,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID           int32   `json:"id"`
	Description  string  `json:"description"`
	Amount       string  `json:"amount"`
	Date         string  `json:"date"`
	CategoryID   *int32  `json:"categoryId"`
	CategoryName *string `json:"categoryName"`
	Notes        *string `json:"notes,omitempty"`
	ReceiptURL   *string `json:"receiptUrl,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// PaginatedExpensesResponse represents a page of expenses
type PaginatedExpensesResponse struct {
	Data       []ExpenseResponse `json:"data"`
	Page       int32             `json:"page"`
	PageSize   int32             `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int32             `json:"totalPages"`
}

// ExpenseRequest represents the create/update expense request body
type ExpenseRequest struct {
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	CategoryID  *int32  `json:"categoryId"`
	Notes       *string `json:"notes"`
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount.StringFixed(2),
		Date:         e.Date.Format("2006-01-02"),
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Notes:        e.Notes,
		ReceiptURL:   e.ReceiptURL,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}

// parseExpenseRequest validates the shared fields of create/update requests
func parseExpenseRequest(req *ExpenseRequest) (decimal.Decimal, time.Time, []ValidationError) {
	var errs []ValidationError

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		errs = append(errs, ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: "Must be in YYYY-MM-DD format"})
	}

	return amount, date, errs
}

// parseExpenseFilters reads listing filters from query parameters
func parseExpenseFilters(c echo.Context) (*domain.ExpenseFilters, error) {
	filters := &domain.ExpenseFilters{
		Search:   c.QueryParam("search"),
		Sort:     domain.ExpenseSort(c.QueryParam("sort")),
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if v := c.QueryParam("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("categoryId must be an integer")
		}
		categoryID := int32(id)
		filters.CategoryID = &categoryID
	}
	if v := c.QueryParam("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("year must be an integer")
		}
		filters.Year = &year
	}
	if v := c.QueryParam("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("month must be an integer between 1 and 12")
		}
		filters.Month = &month
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.ParseInt(v, 10, 32)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("page must be a positive integer")
		}
		filters.Page = int32(page)
	}
	if v := c.QueryParam("pageSize"); v != "" {
		size, err := strconv.ParseInt(v, 10, 32)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("pageSize must be a positive integer")
		}
		filters.PageSize = int32(size)
	}

	return filters, nil
}

// List handles GET /api/v1/expenses
func (h *ExpenseHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseExpenseFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	page, err := h.expenseService.List(userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses")
	}

	data := make([]ExpenseResponse, len(page.Data))
	for i, e := range page.Data {
		data[i] = toExpenseResponse(e)
	}

	return c.JSON(http.StatusOK, PaginatedExpensesResponse{
		Data:       data,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to get expense")
		return NewInternalError(c, "Failed to get expense")
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Create handles POST /api/v1/expenses
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, date, errs := parseExpenseRequest(&req)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	expense, err := h.expenseService.Create(userID, service.CreateExpenseInput{
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
	})
	if err != nil {
		if verrs := expenseValidationErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category not found"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Str("user_id", userID.String()).Int32("expense_id", expense.ID).Msg("Expense created")

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// Update handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, date, errs := parseExpenseRequest(&req)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	expense, err := h.expenseService.Update(userID, id, &domain.UpdateExpenseData{
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
	})
	if err != nil {
		if verrs := expenseValidationErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category not found"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportCSV handles GET /api/v1/expenses/export/csv
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseExpenseFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	expenses, err := h.expenseService.ListAll(userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load expenses for export")
		return NewInternalError(c, "Failed to export expenses")
	}

	data, err := h.exportService.ExpensesCSV(expenses)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build CSV export")
		return NewInternalError(c, "Failed to export expenses")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// ExportXLSX handles GET /api/v1/expenses/export/xlsx
func (h *ExpenseHandler) ExportXLSX(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseExpenseFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	expenses, err := h.expenseService.ListAll(userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load expenses for export")
		return NewInternalError(c, "Failed to export expenses")
	}

	data, err := h.exportService.ExpensesXLSX(expenses)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build XLSX export")
		return NewInternalError(c, "Failed to export expenses")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id")
	}
	return int32(id), nil
}

// expenseValidationErrors maps domain validation errors to field errors.
// Returns nil when the error is not a validation error.
func expenseValidationErrors(err error) []ValidationError {
	switch {
	case errors.Is(err, domain.ErrDescriptionRequired):
		return []ValidationError{{Field: "description", Message: "Description is required"}}
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return []ValidationError{{Field: "description", Message: fmt.Sprintf("Description must be %d characters or less", domain.MaxDescriptionLength)}}
	case errors.Is(err, domain.ErrInvalidAmount):
		return []ValidationError{{Field: "amount", Message: "Amount must be greater than zero"}}
	case errors.Is(err, domain.ErrFutureDate):
		return []ValidationError{{Field: "date", Message: "Date cannot be in the future"}}
	default:
		return nil
	}
}
