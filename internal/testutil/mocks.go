package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories    map[int32]*domain.Category
	ExpenseCounts map[int32]int
	NextID        int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories:    make(map[int32]*domain.Category),
		ExpenseCounts: make(map[int32]int),
		NextID:        1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	created := *category
	created.ID = m.NextID
	m.NextID++
	m.Categories[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a category by ID within a user's scope
func (m *MockCategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByUser retrieves all categories for a user, ordered by name
func (m *MockCategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, c := range m.Categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update updates a category's name
func (m *MockCategoryRepository) Update(userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	c, ok := m.Categories[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	for _, other := range m.Categories {
		if other.ID != id && other.UserID == userID && other.Name == name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	c.Name = name
	return c, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(userID uuid.UUID, id int32) error {
	c, ok := m.Categories[id]
	if !ok || c.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// HasExpenses reports whether expenses reference the category
func (m *MockCategoryRepository) HasExpenses(userID uuid.UUID, id int32) (bool, error) {
	return m.ExpenseCounts[id] > 0, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	NextID   int32
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	created := *expense
	created.ID = m.NextID
	m.NextID++
	m.Expenses[created.ID] = &created
	return &created, nil
}

// GetByID retrieves an expense by ID within a user's scope
func (m *MockExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.Expense, error) {
	if e, ok := m.Expenses[id]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) filtered(userID uuid.UUID, filters *domain.ExpenseFilters) []*domain.Expense {
	var result []*domain.Expense
	for _, e := range m.Expenses {
		if e.UserID != userID {
			continue
		}
		if filters != nil {
			if filters.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *filters.CategoryID) {
				continue
			}
			if filters.Year != nil && e.Date.Year() != *filters.Year {
				continue
			}
			if filters.Month != nil && int(e.Date.Month()) != *filters.Month {
				continue
			}
			if filters.Search != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(filters.Search)) {
				continue
			}
		}
		result = append(result, e)
	}

	var sortKey domain.ExpenseSort
	if filters != nil {
		sortKey = filters.Sort
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch sortKey {
		case domain.SortDateAsc:
			return a.Date.Before(b.Date)
		case domain.SortAmountAsc:
			return a.Amount.LessThan(b.Amount)
		case domain.SortAmountDesc:
			return a.Amount.GreaterThan(b.Amount)
		default:
			return a.Date.After(b.Date)
		}
	})
	return result
}

// GetByUser retrieves a page of expenses matching the filters
func (m *MockExpenseRepository) GetByUser(userID uuid.UUID, filters *domain.ExpenseFilters) (*domain.PaginatedExpenses, error) {
	all := m.filtered(userID, filters)

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}

	total := int64(len(all))
	start := int((page - 1) * pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}

	return &domain.PaginatedExpenses{
		Data:       all[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int32((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// GetAllFiltered retrieves all expenses matching the filters
func (m *MockExpenseRepository) GetAllFiltered(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	return m.filtered(userID, filters), nil
}

// GetByUserAndDateRange retrieves expenses with start <= date < end
func (m *MockExpenseRepository) GetByUserAndDateRange(userID uuid.UUID, start, end time.Time) ([]*domain.Expense, error) {
	var result []*domain.Expense
	for _, e := range m.Expenses {
		if e.UserID != userID {
			continue
		}
		if !e.Date.Before(start) && e.Date.Before(end) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// Update updates an expense's editable fields
func (m *MockExpenseRepository) Update(userID uuid.UUID, id int32, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	e, ok := m.Expenses[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrExpenseNotFound
	}
	e.Description = data.Description
	e.Amount = data.Amount
	e.Date = data.Date
	e.CategoryID = data.CategoryID
	e.Notes = data.Notes
	return e, nil
}

// SetReceiptURL updates an expense's receipt URL
func (m *MockExpenseRepository) SetReceiptURL(userID uuid.UUID, id int32, receiptURL *string) error {
	e, ok := m.Expenses[id]
	if !ok || e.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	e.ReceiptURL = receiptURL
	return nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	e, ok := m.Expenses[id]
	if !ok || e.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
	m.Expenses[expense.ID] = expense
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets       map[int32]*domain.Budget
	CategoryNames map[int32]string
	NextID        int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets:       make(map[int32]*domain.Budget),
		CategoryNames: make(map[int32]string),
		NextID:        1,
	}
}

func (m *MockBudgetRepository) withCategory(b *domain.Budget) *domain.BudgetWithCategory {
	out := &domain.BudgetWithCategory{Budget: *b}
	if name, ok := m.CategoryNames[b.CategoryID]; ok {
		out.CategoryName = &name
	}
	return out
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	created := *budget
	created.ID = m.NextID
	m.NextID++
	m.Budgets[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a budget by ID within a user's scope
func (m *MockBudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.BudgetWithCategory, error) {
	if b, ok := m.Budgets[id]; ok && b.UserID == userID {
		return m.withCategory(b), nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetAllByUser retrieves all budgets for a user
func (m *MockBudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.BudgetWithCategory, error) {
	var result []*domain.BudgetWithCategory
	for _, b := range m.Budgets {
		if b.UserID == userID {
			result = append(result, m.withCategory(b))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result, nil
}

// GetByUserAndMonth retrieves all budgets for one calendar month
func (m *MockBudgetRepository) GetByUserAndMonth(userID uuid.UUID, year, month int) ([]*domain.BudgetWithCategory, error) {
	var result []*domain.BudgetWithCategory
	for _, b := range m.Budgets {
		if b.UserID == userID && b.Year == year && b.Month == month {
			result = append(result, m.withCategory(b))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update updates a budget's editable fields
func (m *MockBudgetRepository) Update(userID uuid.UUID, id int32, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	b.Year = data.Year
	b.Month = data.Month
	b.CategoryID = data.CategoryID
	b.Limit = data.Limit
	return b, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(userID uuid.UUID, id int32) error {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
	m.Budgets[budget.ID] = budget
}

// SetCategoryName registers a category name used when joining budgets
func (m *MockBudgetRepository) SetCategoryName(categoryID int32, name string) {
	m.CategoryNames[categoryID] = name
}

// MockProfileRepository is a mock implementation of domain.ProfileRepository
type MockProfileRepository struct {
	Profiles map[uuid.UUID]*domain.Profile
}

// NewMockProfileRepository creates a new MockProfileRepository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// GetByUser retrieves a user's profile
func (m *MockProfileRepository) GetByUser(userID uuid.UUID) (*domain.Profile, error) {
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

// GetOrCreate retrieves a user's profile, inserting defaults on first access
func (m *MockProfileRepository) GetOrCreate(userID uuid.UUID) (*domain.Profile, error) {
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	p := &domain.Profile{
		UserID:          userID,
		LimitPercentage: domain.DefaultLimitPercentage,
		ReceiveAlerts:   domain.DefaultReceiveAlerts,
	}
	m.Profiles[userID] = p
	return p, nil
}

// Update updates a user's financial settings
func (m *MockProfileRepository) Update(userID uuid.UUID, data *domain.UpdateProfileData) (*domain.Profile, error) {
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.MonthlySalary = data.MonthlySalary
	p.LimitPercentage = data.LimitPercentage
	p.ReceiveAlerts = data.ReceiveAlerts
	return p, nil
}

// AddProfile adds a profile to the mock repository (helper for tests)
func (m *MockProfileRepository) AddProfile(profile *domain.Profile) {
	m.Profiles[profile.UserID] = profile
}
