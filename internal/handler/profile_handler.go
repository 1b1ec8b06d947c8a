package handler

import (
	"errors"
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

// ProfileHandler handles financial settings HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileResponse represents the financial settings response
type ProfileResponse struct {
	MonthlySalary   string `json:"monthlySalary"`
	LimitPercentage int    `json:"limitPercentage"`
	ReceiveAlerts   bool   `json:"receiveAlerts"`
	UpdatedAt       string `json:"updatedAt"`
}

// UpdateProfileRequest represents the update settings request body
type UpdateProfileRequest struct {
	MonthlySalary   string `json:"monthlySalary"`
	LimitPercentage int    `json:"limitPercentage"`
	ReceiveAlerts   bool   `json:"receiveAlerts"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		MonthlySalary:   p.MonthlySalary.StringFixed(2),
		LimitPercentage: p.LimitPercentage,
		ReceiveAlerts:   p.ReceiveAlerts,
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

// GetProfile handles GET /api/v1/profile
// Creates the profile with defaults on first access
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	salary, err := decimal.NewFromString(req.MonthlySalary)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "monthlySalary", Message: "Must be a valid decimal number"},
		})
	}

	profile, err := h.profileService.UpdateProfile(userID, &domain.UpdateProfileData{
		MonthlySalary:   salary,
		LimitPercentage: req.LimitPercentage,
		ReceiveAlerts:   req.ReceiveAlerts,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNegativeSalary) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlySalary", Message: "Salary cannot be negative"},
			})
		}
		if errors.Is(err, domain.ErrInvalidPercentage) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "limitPercentage", Message: "Must be between 1 and 100"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}

	log.Info().Str("user_id", userID.String()).Int("limit_percentage", profile.LimitPercentage).Msg("Profile updated")

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}
