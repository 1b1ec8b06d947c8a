package postgres

import (
	"context"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `user_id, monthly_salary, limit_percentage, receive_alerts, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var salary pgtype.Numeric
	err := row.Scan(&p.UserID, &salary, &p.LimitPercentage, &p.ReceiveAlerts, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.MonthlySalary = pgNumericToDecimal(salary)
	return &p, nil
}

// GetByUser retrieves a user's profile
func (r *ProfileRepository) GetByUser(userID uuid.UUID) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetOrCreate retrieves a user's profile, inserting the defaults on first access.
// The unique user_id key plus ON CONFLICT DO NOTHING keeps this safe under
// concurrent first requests.
func (r *ProfileRepository) GetOrCreate(userID uuid.UUID) (*domain.Profile, error) {
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO profiles (user_id, monthly_salary, limit_percentage, receive_alerts)
		 VALUES ($1, 0, $2, $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, domain.DefaultLimitPercentage, domain.DefaultReceiveAlerts)
	if err != nil {
		return nil, err
	}
	return r.GetByUser(userID)
}

// Update updates a user's financial settings
func (r *ProfileRepository) Update(userID uuid.UUID, data *domain.UpdateProfileData) (*domain.Profile, error) {
	salary, err := decimalToPgNumeric(data.MonthlySalary)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(),
		`UPDATE profiles
		 SET monthly_salary = $2, limit_percentage = $3, receive_alerts = $4, updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+profileColumns,
		userID, salary, data.LimitPercentage, data.ReceiveAlerts)
	profile, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
