package service

import (
	"strings"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo    domain.ExpenseRepository
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ExpenseService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ExpenseService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateExpenseInput carries the fields for creating an expense
type CreateExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  *int32
	Notes       *string
}

func (s *ExpenseService) validateInput(userID uuid.UUID, description string, amount decimal.Decimal, date time.Time, categoryID *int32) error {
	if strings.TrimSpace(description) == "" {
		return domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	// Dates carry no time-of-day semantics; compare at day granularity.
	now := time.Now().UTC()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	if !date.Before(tomorrow) {
		return domain.ErrFutureDate
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(userID, *categoryID); err != nil {
			return err
		}
	}
	return nil
}

// Create records a new expense for the user
func (s *ExpenseService) Create(userID uuid.UUID, input CreateExpenseInput) (*domain.Expense, error) {
	if err := s.validateInput(userID, input.Description, input.Amount, input.Date, input.CategoryID); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.Create(&domain.Expense{
		UserID:      userID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        input.Date,
		CategoryID:  input.CategoryID,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.ExpenseCreated(expense))
	return expense, nil
}

// GetByID retrieves one of the user's expenses
func (s *ExpenseService) GetByID(userID uuid.UUID, id int32) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(userID, id)
}

// List retrieves a filtered, sorted, paginated page of the user's expenses
func (s *ExpenseService) List(userID uuid.UUID, filters *domain.ExpenseFilters) (*domain.PaginatedExpenses, error) {
	return s.expenseRepo.GetByUser(userID, filters)
}

// ListAll retrieves every expense matching the filters, newest first (for exports)
func (s *ExpenseService) ListAll(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	return s.expenseRepo.GetAllFiltered(userID, filters)
}

// Update edits one of the user's expenses
func (s *ExpenseService) Update(userID uuid.UUID, id int32, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	if err := s.validateInput(userID, data.Description, data.Amount, data.Date, data.CategoryID); err != nil {
		return nil, err
	}
	data.Description = strings.TrimSpace(data.Description)

	expense, err := s.expenseRepo.Update(userID, id, data)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.ExpenseUpdated(expense))
	return expense, nil
}

// Delete removes one of the user's expenses
func (s *ExpenseService) Delete(userID uuid.UUID, id int32) error {
	expense, err := s.expenseRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.ExpenseDeleted(expense))
	return nil
}
