package service

import (
	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileService handles financial settings business logic
type ProfileService struct {
	profileRepo domain.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo domain.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile returns the user's financial settings, creating the default
// record (salary 0, limit 50%, alerts on) on first access
func (s *ProfileService) GetProfile(userID uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetOrCreate(userID)
}

// UpdateProfile validates and stores the user's financial settings.
// Range validation lives here, on the settings edit path; the dashboard
// aggregator applies whatever is stored.
func (s *ProfileService) UpdateProfile(userID uuid.UUID, data *domain.UpdateProfileData) (*domain.Profile, error) {
	if data.MonthlySalary.IsNegative() {
		return nil, domain.ErrNegativeSalary
	}
	if data.LimitPercentage < 1 || data.LimitPercentage > 100 {
		return nil, domain.ErrInvalidPercentage
	}

	if _, err := s.profileRepo.GetOrCreate(userID); err != nil {
		return nil, err
	}
	return s.profileRepo.Update(userID, data)
}
