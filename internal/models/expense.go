package models

import "github.com/shopspring/decimal"

// Expense is one row of the expense ledger. It has no product reference.
type Expense struct {
	ID          int             `json:"id"`
	ExpenseDate string          `json:"expense_date"` // DateOnly layout
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
}
