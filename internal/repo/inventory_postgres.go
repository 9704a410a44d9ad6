package repo

import (
	"context"
	"database/sql"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

func (r *PostgresInventoryRepository) Upsert(ctx context.Context, s models.InventorySnapshot) error {
	query := `INSERT INTO inventory (product_id, product_name, inventory_qty, sales_qty, available_stock, supply_qty, stock_qty, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			inventory_qty = EXCLUDED.inventory_qty,
			sales_qty = EXCLUDED.sales_qty,
			available_stock = EXCLUDED.available_stock,
			supply_qty = EXCLUDED.supply_qty,
			stock_qty = EXCLUDED.stock_qty,
			last_updated = NOW()`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query,
		s.ProductID, s.ProductName, s.InventoryQty, s.SalesQty, s.AvailableStock, s.SupplyQty, s.StockQty)
	return dataAccess("inventory_upsert", err)
}

func (r *PostgresInventoryRepository) GetAll(ctx context.Context) ([]models.InventorySnapshot, error) {
	query := `SELECT i.product_id, i.product_name, i.inventory_qty, i.sales_qty, i.available_stock, i.supply_qty, i.stock_qty,
			to_char(i.last_updated, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM inventory i ORDER BY i.product_id`
	return r.query(ctx, "inventory_list", query)
}

func (r *PostgresInventoryRepository) OutOfRange(ctx context.Context, low, high int) ([]models.InventorySnapshot, error) {
	query := `SELECT i.product_id, i.product_name, i.inventory_qty, i.sales_qty, i.available_stock, i.supply_qty, i.stock_qty,
			to_char(i.last_updated, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM inventory i
		WHERE i.available_stock < $1 OR i.available_stock > $2
		ORDER BY i.last_updated DESC`
	return r.query(ctx, "inventory_alerts", query, low, high)
}

func (r *PostgresInventoryRepository) query(ctx context.Context, name, query string, args ...any) ([]models.InventorySnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccess(name, err)
	}
	defer rows.Close()

	var snaps []models.InventorySnapshot
	for rows.Next() {
		var s models.InventorySnapshot
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.InventoryQty, &s.SalesQty,
			&s.AvailableStock, &s.SupplyQty, &s.StockQty, &s.LastUpdated); err != nil {
			return nil, dataAccess(name, err)
		}
		snaps = append(snaps, s)
	}
	return snaps, dataAccess(name, rows.Err())
}
