package postgres

import (
	"context"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO categories (user_id, name)
		 VALUES ($1, $2)
		 RETURNING `+categoryColumns, category.UserID, category.Name)
	created, err := scanCategory(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by its ID, scoped to a user
func (r *CategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAllByUser retrieves all categories for a user, ordered by name
func (r *CategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

// Update updates a category's name
func (r *CategoryRepository) Update(userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE categories SET name = $3, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+categoryColumns, userID, id, name)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// HasExpenses checks if any expenses reference the category
func (r *CategoryRepository) HasExpenses(userID uuid.UUID, id int32) (bool, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND category_id = $2`, userID, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
