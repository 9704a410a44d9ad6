package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresExpenseRepository struct {
	db *sql.DB
}

func NewPostgresExpenseRepository(db *sql.DB) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{db: db}
}

func (r *PostgresExpenseRepository) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	query := `INSERT INTO expenses (expense_date, amount, description, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, e.ExpenseDate, e.Amount, e.Description, e.CreatedAt).Scan(&e.ID)
	return e, err
}

func (r *PostgresExpenseRepository) Find(ctx context.Context, startDate, endDate *string) ([]models.Expense, error) {
	query := `SELECT id, to_char(expense_date, 'YYYY-MM-DD'), amount, description FROM expenses WHERE 1=1`
	args := []any{}
	argIdx := 1
	if startDate != nil {
		query += fmt.Sprintf(" AND expense_date >= $%d", argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil {
		query += fmt.Sprintf(" AND expense_date <= $%d", argIdx)
		args = append(args, *endDate)
	}
	query += " ORDER BY expense_date DESC, id DESC"

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.ExpenseDate, &e.Amount, &e.Description); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *PostgresExpenseRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
