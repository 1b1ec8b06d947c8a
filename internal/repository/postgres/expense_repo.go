package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `e.id, e.user_id, e.description, e.amount, e.date,
	e.category_id, c.name, e.notes, e.receipt_url, e.created_at, e.updated_at`

const expenseFrom = ` FROM expenses e LEFT JOIN categories c ON c.id = e.category_id`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	var amount pgtype.Numeric
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &amount, &e.Date,
		&e.CategoryID, &e.CategoryName, &e.Notes, &e.ReceiptURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	return &e, nil
}

// Create inserts a new expense and returns it with the category name joined
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, err
	}

	var id int32
	err = r.pool.QueryRow(context.Background(),
		`INSERT INTO expenses (user_id, description, amount, date, category_id, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		expense.UserID, expense.Description, amount, expense.Date, expense.CategoryID, expense.Notes).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(expense.UserID, id)
}

// GetByID retrieves an expense by its ID, scoped to a user
func (r *ExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.Expense, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+expenseColumns+expenseFrom+` WHERE e.user_id = $1 AND e.id = $2`, userID, id)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// GetByUser retrieves a page of expenses matching the filters
func (r *ExpenseRepository) GetByUser(userID uuid.UUID, filters *domain.ExpenseFilters) (*domain.PaginatedExpenses, error) {
	where, args := buildExpenseWhere(userID, filters)

	var total int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*)`+expenseFrom+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + expenseColumns + expenseFrom + where + expenseOrderBy(filters.Sort) +
		fmt.Sprintf(` LIMIT %d OFFSET %d`, pageSize, offset)

	expenses, err := r.queryExpenses(query, args)
	if err != nil {
		return nil, err
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedExpenses{
		Data:       expenses,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// GetAllFiltered retrieves all expenses matching the filters, without pagination.
// Used by exports.
func (r *ExpenseRepository) GetAllFiltered(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	where, args := buildExpenseWhere(userID, filters)
	query := `SELECT ` + expenseColumns + expenseFrom + where + expenseOrderBy(filters.Sort)
	return r.queryExpenses(query, args)
}

// GetByUserAndDateRange retrieves expenses with start <= date < end
func (r *ExpenseRepository) GetByUserAndDateRange(userID uuid.UUID, start, end time.Time) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + expenseFrom +
		` WHERE e.user_id = $1 AND e.date >= $2 AND e.date < $3 ORDER BY e.date`
	return r.queryExpenses(query, []interface{}{userID, start, end})
}

// Update updates an expense's editable fields
func (r *ExpenseRepository) Update(userID uuid.UUID, id int32, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(context.Background(),
		`UPDATE expenses
		 SET description = $3, amount = $4, date = $5, category_id = $6, notes = $7, updated_at = now()
		 WHERE user_id = $1 AND id = $2`,
		userID, id, data.Description, amount, data.Date, data.CategoryID, data.Notes)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrExpenseNotFound
	}

	return r.GetByID(userID, id)
}

// SetReceiptURL updates the receipt URL of an expense (nil clears it)
func (r *ExpenseRepository) SetReceiptURL(userID uuid.UUID, id int32, receiptURL *string) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE expenses SET receipt_url = $3, updated_at = now()
		 WHERE user_id = $1 AND id = $2`, userID, id, receiptURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) queryExpenses(query string, args []interface{}) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, expense)
	}
	return result, rows.Err()
}

// buildExpenseWhere builds the WHERE clause and arguments for the given filters
func buildExpenseWhere(userID uuid.UUID, filters *domain.ExpenseFilters) (string, []interface{}) {
	where := ` WHERE e.user_id = $1`
	args := []interface{}{userID}

	if filters == nil {
		return where, args
	}

	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		where += fmt.Sprintf(` AND e.category_id = $%d`, len(args))
	}
	if filters.Year != nil {
		args = append(args, *filters.Year)
		where += fmt.Sprintf(` AND EXTRACT(YEAR FROM e.date) = $%d`, len(args))
	}
	if filters.Month != nil {
		args = append(args, *filters.Month)
		where += fmt.Sprintf(` AND EXTRACT(MONTH FROM e.date) = $%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(` AND e.description ILIKE $%d`, len(args))
	}

	return where, args
}

// expenseOrderBy maps a sort option to an ORDER BY clause.
// Unknown values fall back to newest-first.
func expenseOrderBy(sort domain.ExpenseSort) string {
	switch sort {
	case domain.SortDateAsc:
		return ` ORDER BY e.date, e.id`
	case domain.SortDateDesc:
		return ` ORDER BY e.date DESC, e.id DESC`
	case domain.SortAmountAsc:
		return ` ORDER BY e.amount, e.id`
	case domain.SortAmountDesc:
		return ` ORDER BY e.amount DESC, e.id DESC`
	case domain.SortCategoryAsc:
		return ` ORDER BY c.name NULLS LAST, e.id`
	case domain.SortCategoryDesc:
		return ` ORDER BY c.name DESC NULLS LAST, e.id DESC`
	default:
		return ` ORDER BY e.date DESC, e.id DESC`
	}
}
