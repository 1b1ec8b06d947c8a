package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/gastos-app/gastos-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	events []websocket.Event
	users  []uuid.UUID
}

func (p *recordingPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	p.users = append(p.users, userID)
	p.events = append(p.events, event)
}

func yesterday() time.Time {
	return time.Now().UTC().AddDate(0, 0, -1)
}

func TestExpenseService_Create_Validation(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()

	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Groceries"})
	categoryRepo.AddCategory(&domain.Category{ID: 2, UserID: otherUser, Name: "Housing"})

	svc := NewExpenseService(testutil.NewMockExpenseRepository(), categoryRepo)

	tests := []struct {
		name    string
		input   CreateExpenseInput
		wantErr error
	}{
		{
			name: "empty description",
			input: CreateExpenseInput{
				Description: "   ",
				Amount:      decimal.NewFromInt(10),
				Date:        yesterday(),
			},
			wantErr: domain.ErrDescriptionRequired,
		},
		{
			name: "description too long",
			input: CreateExpenseInput{
				Description: strings.Repeat("x", domain.MaxDescriptionLength+1),
				Amount:      decimal.NewFromInt(10),
				Date:        yesterday(),
			},
			wantErr: domain.ErrDescriptionTooLong,
		},
		{
			name: "zero amount",
			input: CreateExpenseInput{
				Description: "Coffee",
				Amount:      decimal.Zero,
				Date:        yesterday(),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: CreateExpenseInput{
				Description: "Coffee",
				Amount:      decimal.NewFromInt(-5),
				Date:        yesterday(),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "future date",
			input: CreateExpenseInput{
				Description: "Coffee",
				Amount:      decimal.NewFromInt(10),
				Date:        time.Now().UTC().AddDate(0, 0, 2),
			},
			wantErr: domain.ErrFutureDate,
		},
		{
			name: "category owned by another user",
			input: CreateExpenseInput{
				Description: "Rent",
				Amount:      decimal.NewFromInt(800),
				Date:        yesterday(),
				CategoryID:  int32Ptr(2),
			},
			wantErr: domain.ErrCategoryNotFound,
		},
		{
			name: "unknown category",
			input: CreateExpenseInput{
				Description: "Rent",
				Amount:      decimal.NewFromInt(800),
				Date:        yesterday(),
				CategoryID:  int32Ptr(99),
			},
			wantErr: domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(userID, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseService_Create(t *testing.T) {
	userID := uuid.New()

	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Groceries"})

	publisher := &recordingPublisher{}
	svc := NewExpenseService(expenseRepo, categoryRepo)
	svc.SetEventPublisher(publisher)

	expense, err := svc.Create(userID, CreateExpenseInput{
		Description: "  Weekly shop  ",
		Amount:      decimal.RequireFromString("42.50"),
		Date:        yesterday(),
		CategoryID:  int32Ptr(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expense.ID == 0 {
		t.Error("expected an assigned ID")
	}
	if expense.Description != "Weekly shop" {
		t.Errorf("Description = %q, want trimmed %q", expense.Description, "Weekly shop")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	if publisher.events[0].Type != "expense.created" {
		t.Errorf("event type = %s, want expense.created", publisher.events[0].Type)
	}
	if publisher.users[0] != userID {
		t.Errorf("event published to %s, want %s", publisher.users[0], userID)
	}
}

func TestExpenseService_Create_TodayAllowed(t *testing.T) {
	userID := uuid.New()
	svc := NewExpenseService(testutil.NewMockExpenseRepository(), testutil.NewMockCategoryRepository())

	_, err := svc.Create(userID, CreateExpenseInput{
		Description: "Lunch",
		Amount:      decimal.NewFromInt(12),
		Date:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("today's date should be accepted, got %v", err)
	}
}

func TestExpenseService_Update(t *testing.T) {
	userID := uuid.New()

	expenseRepo := testutil.NewMockExpenseRepository()
	expenseRepo.AddExpense(&domain.Expense{
		ID:          1,
		UserID:      userID,
		Description: "Old",
		Amount:      decimal.NewFromInt(10),
		Date:        yesterday(),
	})

	publisher := &recordingPublisher{}
	svc := NewExpenseService(expenseRepo, testutil.NewMockCategoryRepository())
	svc.SetEventPublisher(publisher)

	updated, err := svc.Update(userID, 1, &domain.UpdateExpenseData{
		Description: "New description",
		Amount:      decimal.NewFromInt(20),
		Date:        yesterday(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description != "New description" {
		t.Errorf("Description = %q, want %q", updated.Description, "New description")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != "expense.updated" {
		t.Errorf("expected one expense.updated event, got %+v", publisher.events)
	}

	_, err = svc.Update(uuid.New(), 1, &domain.UpdateExpenseData{
		Description: "Theirs",
		Amount:      decimal.NewFromInt(1),
		Date:        yesterday(),
	})
	if !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("updating another user's expense: error = %v, want %v", err, domain.ErrExpenseNotFound)
	}
}

func TestExpenseService_Delete(t *testing.T) {
	userID := uuid.New()

	expenseRepo := testutil.NewMockExpenseRepository()
	expenseRepo.AddExpense(&domain.Expense{
		ID:          1,
		UserID:      userID,
		Description: "Gone soon",
		Amount:      decimal.NewFromInt(10),
		Date:        yesterday(),
	})

	publisher := &recordingPublisher{}
	svc := NewExpenseService(expenseRepo, testutil.NewMockCategoryRepository())
	svc.SetEventPublisher(publisher)

	if err := svc.Delete(userID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(userID, 1); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expense still retrievable after delete")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != "expense.deleted" {
		t.Errorf("expected one expense.deleted event, got %+v", publisher.events)
	}

	if err := svc.Delete(userID, 42); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("deleting missing expense: error = %v, want %v", err, domain.ErrExpenseNotFound)
	}
}

func TestExpenseService_List_Pagination(t *testing.T) {
	userID := uuid.New()

	expenseRepo := testutil.NewMockExpenseRepository()
	for i := 1; i <= 25; i++ {
		expenseRepo.AddExpense(&domain.Expense{
			ID:          int32(i),
			UserID:      userID,
			Description: "Item",
			Amount:      decimal.NewFromInt(int64(i)),
			Date:        time.Now().UTC().AddDate(0, 0, -i),
		})
	}

	svc := NewExpenseService(expenseRepo, testutil.NewMockCategoryRepository())

	page, err := svc.List(userID, &domain.ExpenseFilters{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalItems != 25 {
		t.Errorf("TotalItems = %d, want 25", page.TotalItems)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Data) != 10 {
		t.Errorf("page size = %d, want 10", len(page.Data))
	}
}
