package service

import (
	"errors"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestAuthService_HandleCallback_NewUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	name := "New User"
	user, err := svc.HandleCallback("auth0|new", "new@example.com", &name, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("expected an assigned user ID")
	}
	if user.Email != "new@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "new@example.com")
	}
	if user.Name == nil || *user.Name != name {
		t.Errorf("Name = %v, want %q", user.Name, name)
	}
}

func TestAuthService_HandleCallback_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()

	existing := &domain.User{
		ID:      uuid.New(),
		Auth0ID: "auth0|existing",
		Email:   "existing@example.com",
	}
	userRepo.AddUser(existing)

	svc := NewAuthService(userRepo)

	user, err := svc.HandleCallback("auth0|existing", "existing@example.com", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != existing.ID {
		t.Errorf("ID = %s, want existing %s", user.ID, existing.ID)
	}
}

func TestAuthService_GetUserByAuth0ID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()

	user := &domain.User{
		ID:      uuid.New(),
		Auth0ID: "auth0|known",
		Email:   "known@example.com",
	}
	userRepo.AddUser(user)

	svc := NewAuthService(userRepo)

	got, err := svc.GetUserByAuth0ID("auth0|known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %s, want %s", got.ID, user.ID)
	}

	if _, err := svc.GetUserByAuth0ID("auth0|unknown"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown user: error = %v, want %v", err, domain.ErrUserNotFound)
	}
}
