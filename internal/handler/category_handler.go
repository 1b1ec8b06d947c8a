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
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name string `json:"name"`
}

// CanDeleteResponse reports whether a category can be deleted
type CanDeleteResponse struct {
	CanDelete bool `json:"canDelete"`
}

func toCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cat.UpdatedAt.Format(time.RFC3339),
	}
}

func toCategoryResponses(categories []*domain.Category) []CategoryResponse {
	result := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		result[i] = toCategoryResponse(cat)
	}
	return result
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	categories, err := h.categoryService.List(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	return c.JSON(http.StatusOK, toCategoryResponses(categories))
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	category, err := h.categoryService.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to get category")
		return NewInternalError(c, "Failed to get category")
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Create(userID, req.Name)
	if err != nil {
		if verrs := categoryValidationErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		if errors.Is(err, domain.ErrCategoryAlreadyExists) {
			return NewConflictError(c, "A category with this name already exists")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("user_id", userID.String()).Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// Seed handles POST /api/v1/categories/seed
// Creates the default category set, skipping names that already exist
func (h *CategoryHandler) Seed(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	categories, err := h.categoryService.SeedDefaults(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to seed default categories")
		return NewInternalError(c, "Failed to seed default categories")
	}

	return c.JSON(http.StatusOK, toCategoryResponses(categories))
}

// Update handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Update(userID, id, req.Name)
	if err != nil {
		if verrs := categoryValidationErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryAlreadyExists) {
			return NewConflictError(c, "A category with this name already exists")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /api/v1/categories/:id
// Refused while expenses still reference the category
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryInUse) {
			return NewConflictError(c, "Category has expenses and cannot be deleted")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	return c.NoContent(http.StatusNoContent)
}

// CanDelete handles GET /api/v1/categories/:id/can-delete
func (h *CategoryHandler) CanDelete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	canDelete, err := h.categoryService.CanDelete(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to check category usage")
		return NewInternalError(c, "Failed to check category usage")
	}

	return c.JSON(http.StatusOK, CanDeleteResponse{CanDelete: canDelete})
}

// categoryValidationErrors maps domain validation errors to field errors.
// Returns nil when the error is not a validation error.
func categoryValidationErrors(err error) []ValidationError {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return []ValidationError{{Field: "name", Message: "Name is required"}}
	case errors.Is(err, domain.ErrNameTooLong):
		return []ValidationError{{Field: "name", Message: fmt.Sprintf("Name must be %d characters or less", domain.MaxCategoryNameLength)}}
	default:
		return nil
	}
}
