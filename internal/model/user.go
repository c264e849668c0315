package model

import "github.com/shopspring/decimal"

const DefaultRiskProfile = "moderate"

// UserProfile is the read-only view of a user the advisor works from.
// Money fields are NULL when the user never filled them in.
type UserProfile struct {
	ID             int64
	Username       string
	Email          string
	MonthlyIncome  decimal.NullDecimal
	MonthlyBudget  decimal.NullDecimal
	TotalExpenses  decimal.NullDecimal
	InvestableCash decimal.NullDecimal
	RiskProfile    string
	Watchlist      []string
}

// Label identifies the user in log lines.
func (u UserProfile) Label() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}
