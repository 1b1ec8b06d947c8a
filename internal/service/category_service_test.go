package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestCategoryService_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		input    string
		setup    func(repo *testutil.MockCategoryRepository)
		wantErr  error
		wantName string
	}{
		{
			name:     "valid name is trimmed",
			input:    "  Groceries  ",
			wantName: "Groceries",
		},
		{
			name:    "empty name",
			input:   "   ",
			wantErr: domain.ErrNameRequired,
		},
		{
			name:    "name too long",
			input:   strings.Repeat("x", domain.MaxCategoryNameLength+1),
			wantErr: domain.ErrNameTooLong,
		},
		{
			name:  "duplicate name",
			input: "Groceries",
			setup: func(repo *testutil.MockCategoryRepository) {
				repo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Groceries"})
			},
			wantErr: domain.ErrCategoryAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockCategoryRepository()
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewCategoryService(repo)

			category, err := svc.Create(userID, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && category.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", category.Name, tt.wantName)
			}
		})
	}
}

func TestCategoryService_SameNameDifferentUsers(t *testing.T) {
	repo := testutil.NewMockCategoryRepository()
	svc := NewCategoryService(repo)

	if _, err := svc.Create(uuid.New(), "Groceries"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(uuid.New(), "Groceries"); err != nil {
		t.Errorf("same name under a different user should be allowed, got %v", err)
	}
}

func TestCategoryService_SeedDefaults(t *testing.T) {
	userID := uuid.New()

	repo := testutil.NewMockCategoryRepository()
	repo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Groceries"})

	publisher := &recordingPublisher{}
	svc := NewCategoryService(repo)
	svc.SetEventPublisher(publisher)

	categories, err := svc.SeedDefaults(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != len(domain.DefaultCategoryNames) {
		t.Fatalf("expected %d categories, got %d", len(domain.DefaultCategoryNames), len(categories))
	}

	names := make(map[string]int)
	for _, c := range categories {
		names[c.Name]++
	}
	for _, want := range domain.DefaultCategoryNames {
		if names[want] != 1 {
			t.Errorf("category %q appears %d times, want exactly once", want, names[want])
		}
	}

	// Only the missing defaults were created
	if len(publisher.events) != len(domain.DefaultCategoryNames)-1 {
		t.Errorf("expected %d created events, got %d", len(domain.DefaultCategoryNames)-1, len(publisher.events))
	}

	// Seeding again is a no-op
	again, err := svc.SeedDefaults(userID)
	if err != nil {
		t.Fatalf("unexpected error on second seed: %v", err)
	}
	if len(again) != len(domain.DefaultCategoryNames) {
		t.Errorf("second seed changed the category count to %d", len(again))
	}
}

func TestCategoryService_Delete(t *testing.T) {
	userID := uuid.New()

	repo := testutil.NewMockCategoryRepository()
	repo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Groceries"})
	repo.AddCategory(&domain.Category{ID: 2, UserID: userID, Name: "Transport"})
	repo.ExpenseCounts[2] = 3

	svc := NewCategoryService(repo)

	if err := svc.Delete(userID, 2); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Errorf("deleting a category in use: error = %v, want %v", err, domain.ErrCategoryInUse)
	}
	if err := svc.Delete(userID, 1); err != nil {
		t.Errorf("deleting an unused category: unexpected error %v", err)
	}
	if err := svc.Delete(userID, 99); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("deleting a missing category: error = %v, want %v", err, domain.ErrCategoryNotFound)
	}
	if err := svc.Delete(uuid.New(), 2); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("deleting another user's category: error = %v, want %v", err, domain.ErrCategoryNotFound)
	}
}

func TestCategoryService_CanDelete(t *testing.T) {
	userID := uuid.New()

	repo := testutil.NewMockCategoryRepository()
	repo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Groceries"})
	repo.AddCategory(&domain.Category{ID: 2, UserID: userID, Name: "Transport"})
	repo.ExpenseCounts[2] = 1

	svc := NewCategoryService(repo)

	ok, err := svc.CanDelete(userID, 1)
	if err != nil || !ok {
		t.Errorf("CanDelete(unused) = %v, %v, want true, nil", ok, err)
	}
	ok, err = svc.CanDelete(userID, 2)
	if err != nil || ok {
		t.Errorf("CanDelete(in use) = %v, %v, want false, nil", ok, err)
	}
	if _, err := svc.CanDelete(userID, 99); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("CanDelete(missing) error = %v, want %v", err, domain.ErrCategoryNotFound)
	}
}
