package repository

import (
	"context"
	"database/sql"
	"fintrack/internal/model"

	"github.com/lib/pq"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetProfile loads a user with the sum of their recorded expenses. It returns
// nil, nil when the user does not exist.
func (r *UserRepository) GetProfile(ctx context.Context, id int64) (*model.UserProfile, error) {
	var u model.UserProfile
	var riskProfile sql.NullString
	var watchlist []string

	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, COALESCE(u.username, ''), COALESCE(u.email, ''),
			u.monthly_income, u.monthly_budget,
			(SELECT SUM(e.amount) FROM expenses e WHERE e.user_id = u.id),
			u.risk_profile, u.investable_cash, u.watchlist
		FROM users u
		WHERE u.id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Email,
		&u.MonthlyIncome, &u.MonthlyBudget,
		&u.TotalExpenses,
		&riskProfile, &u.InvestableCash, pq.Array(&watchlist))

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	u.RiskProfile = riskProfile.String
	u.Watchlist = watchlist
	return &u, nil
}

func (r *UserRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
