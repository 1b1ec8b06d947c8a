package postgres

import (
	"context"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `b.id, b.user_id, b.year, b.month, b.category_id, b.limit_amount,
	b.created_at, b.updated_at, c.name`

const budgetFrom = ` FROM budgets b LEFT JOIN categories c ON c.id = b.category_id`

func scanBudgetWithCategory(row pgx.Row) (*domain.BudgetWithCategory, error) {
	var b domain.BudgetWithCategory
	var limit pgtype.Numeric
	err := row.Scan(&b.ID, &b.UserID, &b.Year, &b.Month, &b.CategoryID, &limit,
		&b.CreatedAt, &b.UpdatedAt, &b.CategoryName)
	if err != nil {
		return nil, err
	}
	b.Limit = pgNumericToDecimal(limit)
	return &b, nil
}

// Create inserts a new budget
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	limit, err := decimalToPgNumeric(budget.Limit)
	if err != nil {
		return nil, err
	}

	var created domain.Budget
	var limitOut pgtype.Numeric
	err = r.pool.QueryRow(context.Background(),
		`INSERT INTO budgets (user_id, year, month, category_id, limit_amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, year, month, category_id, limit_amount, created_at, updated_at`,
		budget.UserID, budget.Year, budget.Month, budget.CategoryID, limit).
		Scan(&created.ID, &created.UserID, &created.Year, &created.Month,
			&created.CategoryID, &limitOut, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	created.Limit = pgNumericToDecimal(limitOut)
	return &created, nil
}

// GetByID retrieves a budget by its ID, scoped to a user
func (r *BudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.BudgetWithCategory, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+budgetColumns+budgetFrom+` WHERE b.user_id = $1 AND b.id = $2`, userID, id)
	budget, err := scanBudgetWithCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetAllByUser retrieves all budgets for a user, newest month first
func (r *BudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.BudgetWithCategory, error) {
	return r.queryBudgets(
		`SELECT `+budgetColumns+budgetFrom+
			` WHERE b.user_id = $1 ORDER BY b.year DESC, b.month DESC, c.name`,
		userID)
}

// GetByUserAndMonth retrieves all budgets for one calendar month
func (r *BudgetRepository) GetByUserAndMonth(userID uuid.UUID, year, month int) ([]*domain.BudgetWithCategory, error) {
	return r.queryBudgets(
		`SELECT `+budgetColumns+budgetFrom+
			` WHERE b.user_id = $1 AND b.year = $2 AND b.month = $3 ORDER BY c.name`,
		userID, year, month)
}

// Update updates a budget's editable fields
func (r *BudgetRepository) Update(userID uuid.UUID, id int32, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	limit, err := decimalToPgNumeric(data.Limit)
	if err != nil {
		return nil, err
	}

	var updated domain.Budget
	var limitOut pgtype.Numeric
	err = r.pool.QueryRow(context.Background(),
		`UPDATE budgets
		 SET year = $3, month = $4, category_id = $5, limit_amount = $6, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, year, month, category_id, limit_amount, created_at, updated_at`,
		userID, id, data.Year, data.Month, data.CategoryID, limit).
		Scan(&updated.ID, &updated.UserID, &updated.Year, &updated.Month,
			&updated.CategoryID, &limitOut, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	updated.Limit = pgNumericToDecimal(limitOut)
	return &updated, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) queryBudgets(query string, args ...interface{}) ([]*domain.BudgetWithCategory, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BudgetWithCategory
	for rows.Next() {
		budget, err := scanBudgetWithCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, budget)
	}
	return result, rows.Err()
}
