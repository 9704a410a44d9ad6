package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, description, category, price, cost, stock_qty, inventory_qty, supply_qty, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.StockQty, p.InventoryQty, p.SupplyQty, p.ImagePath, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, err
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, description, category, price, cost, stock_qty, inventory_qty, supply_qty, image_path FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Cost,
			&p.StockQty, &p.InventoryQty, &p.SupplyQty, &p.ImagePath); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT id, name, description, category, price, cost, stock_qty, inventory_qty, supply_qty, image_path FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Cost, &p.StockQty, &p.InventoryQty, &p.SupplyQty, &p.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	query := `SELECT id, name, description, category, price, cost, stock_qty, inventory_qty, supply_qty, image_path FROM products WHERE name = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Cost, &p.StockQty, &p.InventoryQty, &p.SupplyQty, &p.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, category = $3, price = $4, cost = $5,
		stock_qty = $6, inventory_qty = $7, supply_qty = $8, image_path = $9, updated_at = $10 WHERE id = $11`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.StockQty, p.InventoryQty, p.SupplyQty, p.ImagePath, p.UpdatedAt, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// One fixed statement per editable column. The map key set mirrors
// ProductFieldAllowList.
var productFieldUpdates = map[string]string{
	"name":        `UPDATE products SET name = $1, updated_at = $2 WHERE id = $3`,
	"description": `UPDATE products SET description = $1, updated_at = $2 WHERE id = $3`,
	"category":    `UPDATE products SET category = $1, updated_at = $2 WHERE id = $3`,
	"price":       `UPDATE products SET price = $1, updated_at = $2 WHERE id = $3`,
}

func (r *PostgresProductRepository) UpdateField(ctx context.Context, id int, field, value string) error {
	query, ok := productFieldUpdates[field]
	if !ok {
		return fmt.Errorf("field %q is not editable", field)
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, value, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
