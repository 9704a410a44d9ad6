package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresInvoiceRepository struct {
	db *sql.DB
}

func NewPostgresInvoiceRepository(db *sql.DB) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

func (r *PostgresInvoiceRepository) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Invoice{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO invoices (invoice_no, customer_name, issue_date, due_date, status, subtotal, tax, total, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		inv.InvoiceNo, inv.CustomerName, inv.IssueDate, inv.DueDate, inv.Status,
		inv.Subtotal, inv.Tax, inv.Total, inv.CreatedAt, inv.UpdatedAt).Scan(&inv.ID)
	if isUniqueViolation(err) {
		return models.Invoice{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Invoice{}, err
	}

	if err := insertInvoiceItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return models.Invoice{}, err
	}
	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
	}

	return inv, tx.Commit()
}

func insertInvoiceItems(ctx context.Context, tx *sql.Tx, invoiceID int, items []models.InvoiceItem) error {
	for i, item := range items {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO invoice_items (invoice_id, name, qty, unit_price, amount) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			invoiceID, item.Name, item.Qty, item.UnitPrice, item.Amount).Scan(&items[i].ID); err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *PostgresInvoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	query := `SELECT id, invoice_no, customer_name, to_char(issue_date, 'YYYY-MM-DD'), to_char(due_date, 'YYYY-MM-DD'),
			status, subtotal, tax, total FROM invoices ORDER BY id DESC`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNo, &inv.CustomerName, &inv.IssueDate, &inv.DueDate,
			&inv.Status, &inv.Subtotal, &inv.Tax, &inv.Total); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *PostgresInvoiceRepository) GetByID(ctx context.Context, id int) (models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var inv models.Invoice
	err := r.db.QueryRowContext(ctx,
		`SELECT id, invoice_no, customer_name, to_char(issue_date, 'YYYY-MM-DD'), to_char(due_date, 'YYYY-MM-DD'),
			status, subtotal, tax, total FROM invoices WHERE id = $1`, id).
		Scan(&inv.ID, &inv.InvoiceNo, &inv.CustomerName, &inv.IssueDate, &inv.DueDate,
			&inv.Status, &inv.Subtotal, &inv.Tax, &inv.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, ErrInvoiceNotFound
	}
	if err != nil {
		return models.Invoice{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, name, qty, unit_price, amount FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Invoice{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Name, &item.Qty, &item.UnitPrice, &item.Amount); err != nil {
			return models.Invoice{}, err
		}
		inv.Items = append(inv.Items, item)
	}
	return inv, rows.Err()
}

func (r *PostgresInvoiceRepository) Update(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Invoice{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET invoice_no = $1, customer_name = $2, issue_date = $3, due_date = $4, status = $5,
			subtotal = $6, tax = $7, total = $8, updated_at = $9 WHERE id = $10`,
		inv.InvoiceNo, inv.CustomerName, inv.IssueDate, inv.DueDate, inv.Status,
		inv.Subtotal, inv.Tax, inv.Total, inv.UpdatedAt, inv.ID)
	if err != nil {
		return models.Invoice{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Invoice{}, ErrInvoiceNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return models.Invoice{}, err
	}
	if err := insertInvoiceItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return models.Invoice{}, err
	}

	return inv, tx.Commit()
}

func (r *PostgresInvoiceRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
