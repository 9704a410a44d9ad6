package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense models.Expense) (models.Expense, error)
	Find(ctx context.Context, startDate, endDate *string) ([]models.Expense, error)
	Delete(ctx context.Context, id int) error
}
