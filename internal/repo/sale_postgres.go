package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

func (r *PostgresSaleRepository) Create(ctx context.Context, s models.Sale) (models.Sale, error) {
	query := `INSERT INTO sales (product_id, sale_date, sales_qty, sales_price, total_price, sale_status, payment_status, sale_note, staff_name, customer_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		s.ProductID, s.SaleDate, s.SalesQty, s.SalesPrice, s.TotalPrice,
		s.SaleStatus, s.PaymentStatus, s.SaleNote, s.StaffName, s.CustomerName, s.CreatedAt).Scan(&s.ID)
	return s, err
}

func (r *PostgresSaleRepository) GetByID(ctx context.Context, id int) (models.Sale, error) {
	query := `SELECT s.id, s.product_id, p.name, to_char(s.sale_date, 'YYYY-MM-DD'), s.sales_qty, s.sales_price, s.total_price,
			s.sale_status, s.payment_status, s.sale_note, s.staff_name, s.customer_name
		FROM sales s JOIN products p ON s.product_id = p.id WHERE s.id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s models.Sale
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.ProductID, &s.ProductName, &s.SaleDate,
		&s.SalesQty, &s.SalesPrice, &s.TotalPrice, &s.SaleStatus, &s.PaymentStatus, &s.SaleNote, &s.StaffName, &s.CustomerName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

func (r *PostgresSaleRepository) Find(ctx context.Context, f SaleFilter) ([]models.Sale, int, error) {
	where, args := saleConditions(f)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales s WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.id, s.product_id, p.name, to_char(s.sale_date, 'YYYY-MM-DD'), s.sales_qty, s.sales_price, s.total_price,
			s.sale_status, s.payment_status, s.sale_note, s.staff_name, s.customer_name
		FROM sales s JOIN products p ON s.product_id = p.id WHERE 1=1` + where + ` ORDER BY s.sale_date DESC, s.id DESC`
	argIdx := len(args) + 1
	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.SaleDate, &s.SalesQty, &s.SalesPrice,
			&s.TotalPrice, &s.SaleStatus, &s.PaymentStatus, &s.SaleNote, &s.StaffName, &s.CustomerName); err != nil {
			return nil, 0, err
		}
		sales = append(sales, s)
	}
	return sales, total, rows.Err()
}

func saleConditions(f SaleFilter) (string, []any) {
	query := ""
	args := []any{}
	argIdx := 1

	if f.ProductID != nil {
		query += fmt.Sprintf(" AND s.product_id = $%d", argIdx)
		args = append(args, *f.ProductID)
		argIdx++
	}
	if f.StartDate != nil {
		query += fmt.Sprintf(" AND s.sale_date >= $%d", argIdx)
		args = append(args, *f.StartDate)
		argIdx++
	}
	if f.EndDate != nil {
		query += fmt.Sprintf(" AND s.sale_date <= $%d", argIdx)
		args = append(args, *f.EndDate)
		argIdx++
	}

	return query, args
}

func (r *PostgresSaleRepository) Update(ctx context.Context, s models.Sale) (models.Sale, error) {
	query := `UPDATE sales SET product_id = $1, sale_date = $2, sales_qty = $3, sales_price = $4, total_price = $5,
		sale_status = $6, payment_status = $7, sale_note = $8, staff_name = $9, customer_name = $10 WHERE id = $11`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, s.ProductID, s.SaleDate, s.SalesQty, s.SalesPrice, s.TotalPrice,
		s.SaleStatus, s.PaymentStatus, s.SaleNote, s.StaffName, s.CustomerName, s.ID)
	if err != nil {
		return models.Sale{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, nil
}

func (r *PostgresSaleRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}
