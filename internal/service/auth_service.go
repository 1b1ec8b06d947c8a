package service

import (
	"github.com/gastos-app/gastos-backend/internal/domain"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HandleCallback creates the local user record on first login, or returns
// the existing one
func (s *AuthService) HandleCallback(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	return s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, name, pictureURL)
}

// GetUserByAuth0ID looks up a local user by the token subject
func (s *AuthService) GetUserByAuth0ID(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}
