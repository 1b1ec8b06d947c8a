package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newProfileHandler() (*ProfileHandler, *testutil.MockProfileRepository) {
	profileRepo := testutil.NewMockProfileRepository()
	profileService := service.NewProfileService(profileRepo)
	return NewProfileHandler(profileService), profileRepo
}

func TestGetProfile_CreatesDefaults(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "", "", uuid.New())

	err := handler.GetProfile(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.MonthlySalary != "0.00" {
		t.Errorf("Expected salary '0.00', got %s", response.MonthlySalary)
	}
	if response.LimitPercentage != domain.DefaultLimitPercentage {
		t.Errorf("Expected limit percentage %d, got %d", domain.DefaultLimitPercentage, response.LimitPercentage)
	}
	if !response.ReceiveAlerts {
		t.Error("Expected receiveAlerts true by default")
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandler()

	body := `{"monthlySalary":"2500.00","limitPercentage":40,"receiveAlerts":false}`
	req := jsonRequest(http.MethodPut, "/api/v1/profile", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "", "", uuid.New())

	err := handler.UpdateProfile(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.MonthlySalary != "2500.00" {
		t.Errorf("Expected salary '2500.00', got %s", response.MonthlySalary)
	}
	if response.LimitPercentage != 40 {
		t.Errorf("Expected limit percentage 40, got %d", response.LimitPercentage)
	}
	if response.ReceiveAlerts {
		t.Error("Expected receiveAlerts false")
	}
}

func TestUpdateProfile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "invalid salary string",
			body: `{"monthlySalary":"abc","limitPercentage":50,"receiveAlerts":true}`,
		},
		{
			name: "negative salary",
			body: `{"monthlySalary":"-100","limitPercentage":50,"receiveAlerts":true}`,
		},
		{
			name: "percentage too low",
			body: `{"monthlySalary":"1000","limitPercentage":0,"receiveAlerts":true}`,
		},
		{
			name: "percentage too high",
			body: `{"monthlySalary":"1000","limitPercentage":101,"receiveAlerts":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, _ := newProfileHandler()

			req := jsonRequest(http.MethodPut, "/api/v1/profile", tt.body)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			setupAuthContextWithUser(c, "auth0|test", "test@example.com", "", "", uuid.New())

			err := handler.UpdateProfile(c)
			if err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestProfile_Unauthorized(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetProfile(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
