package service

import (
	"strings"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
	"github.com/google/uuid"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CategoryService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return domain.ErrNameTooLong
	}
	return nil
}

// Create creates a new category for the user
func (s *CategoryService) Create(userID uuid.UUID, name string) (*domain.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.Create(&domain.Category{
		UserID: userID,
		Name:   strings.TrimSpace(name),
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.CategoryCreated(category))
	return category, nil
}

// GetByID retrieves one of the user's categories
func (s *CategoryService) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	return s.categoryRepo.GetByID(userID, id)
}

// List retrieves all of the user's categories ordered by name
func (s *CategoryService) List(userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByUser(userID)
}

// SeedDefaults creates the default category set, skipping names that already
// exist, and returns the resulting full list
func (s *CategoryService) SeedDefaults(userID uuid.UUID) ([]*domain.Category, error) {
	existing, err := s.categoryRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}

	for _, name := range domain.DefaultCategoryNames {
		if have[name] {
			continue
		}
		category, err := s.categoryRepo.Create(&domain.Category{UserID: userID, Name: name})
		if err != nil {
			// A concurrent seed may have inserted the same name.
			if err == domain.ErrCategoryAlreadyExists {
				continue
			}
			return nil, err
		}
		s.publishEvent(userID, websocket.CategoryCreated(category))
	}

	return s.categoryRepo.GetAllByUser(userID)
}

// Update renames one of the user's categories
func (s *CategoryService) Update(userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.Update(userID, id, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.CategoryUpdated(category))
	return category, nil
}

// Delete removes one of the user's categories. Categories with expenses
// associated cannot be deleted.
func (s *CategoryService) Delete(userID uuid.UUID, id int32) error {
	category, err := s.categoryRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	inUse, err := s.categoryRepo.HasExpenses(userID, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.CategoryDeleted(category))
	return nil
}

// CanDelete reports whether the category has no expenses associated
func (s *CategoryService) CanDelete(userID uuid.UUID, id int32) (bool, error) {
	if _, err := s.categoryRepo.GetByID(userID, id); err != nil {
		return false, err
	}
	inUse, err := s.categoryRepo.HasExpenses(userID, id)
	if err != nil {
		return false, err
	}
	return !inUse, nil
}
