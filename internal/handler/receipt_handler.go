package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler handles expense receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// PresignedURLResponse carries a temporary download URL for a receipt
type PresignedURLResponse struct {
	URL string `json:"url"`
}

// Attach handles POST /api/v1/expenses/:id/receipt
func (h *ReceiptHandler) Attach(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// Without storage there is nothing to upload to
	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	expense, err := h.receiptService.Attach(c.Request().Context(), userID, id, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		case errors.Is(err, service.ErrReceiptTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrReceiptInvalidFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, WebP"},
			})
		case errors.Is(err, service.ErrReceiptTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrReceiptInvalidData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to attach receipt")
			return NewInternalError(c, "Failed to attach receipt")
		}
	}

	log.Info().
		Str("user_id", userID.String()).
		Int32("expense_id", id).
		Msg("Receipt attached")

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// Remove handles DELETE /api/v1/expenses/:id/receipt
func (h *ReceiptHandler) Remove(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt removal is disabled (storage not configured)")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.receiptService.Remove(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to remove receipt")
		return NewInternalError(c, "Failed to remove receipt")
	}

	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /api/v1/expenses/:id/receipt
// Returns a short-lived presigned URL for the stored receipt
func (h *ReceiptHandler) Download(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt downloads are disabled (storage not configured)")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	url, err := h.receiptService.PresignedURL(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("expense_id", id).Msg("Failed to generate receipt URL")
		return NewInternalError(c, "Failed to generate receipt URL")
	}

	return c.JSON(http.StatusOK, PresignedURLResponse{URL: url})
}
