package service

import (
	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo     domain.BudgetRepository
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BudgetService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateBudgetInput carries the fields for creating a budget
type CreateBudgetInput struct {
	Year       int
	Month      int
	CategoryID int32
	Limit      decimal.Decimal
}

func (s *BudgetService) validateInput(userID uuid.UUID, year, month int, categoryID int32, limit decimal.Decimal) error {
	if year < domain.MinYear || year > domain.MaxYear {
		return domain.ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return domain.ErrInvalidMonth
	}
	if limit.IsNegative() {
		return domain.ErrInvalidLimit
	}
	if _, err := s.categoryRepo.GetByID(userID, categoryID); err != nil {
		return err
	}
	return nil
}

// Create creates a new monthly budget for the user
func (s *BudgetService) Create(userID uuid.UUID, input CreateBudgetInput) (*domain.Budget, error) {
	if err := s.validateInput(userID, input.Year, input.Month, input.CategoryID, input.Limit); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Create(&domain.Budget{
		UserID:     userID,
		Year:       input.Year,
		Month:      input.Month,
		CategoryID: input.CategoryID,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.BudgetCreated(budget))
	return budget, nil
}

// GetByID retrieves one of the user's budgets with its category name
func (s *BudgetService) GetByID(userID uuid.UUID, id int32) (*domain.BudgetWithCategory, error) {
	return s.budgetRepo.GetByID(userID, id)
}

// List retrieves all of the user's budgets, newest month first
func (s *BudgetService) List(userID uuid.UUID) ([]*domain.BudgetWithCategory, error) {
	return s.budgetRepo.GetAllByUser(userID)
}

// Update edits one of the user's budgets
func (s *BudgetService) Update(userID uuid.UUID, id int32, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	if err := s.validateInput(userID, data.Year, data.Month, data.CategoryID, data.Limit); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Update(userID, id, data)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.BudgetUpdated(budget))
	return budget, nil
}

// Delete removes one of the user's budgets
func (s *BudgetService) Delete(userID uuid.UUID, id int32) error {
	budget, err := s.budgetRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.BudgetDeleted(budget))
	return nil
}
