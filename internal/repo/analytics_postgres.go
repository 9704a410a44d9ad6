package repo

import (
	"context"
	"database/sql"

	"github.com/salespilot/backoffice/internal/metrics"
	"github.com/salespilot/backoffice/internal/models"
)

type PostgresAnalyticsRepository struct {
	db *sql.DB
}

func NewPostgresAnalyticsRepository(db *sql.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) ProductSales(ctx context.Context, startDate, endDate string) ([]metrics.ProductSalesRow, error) {
	query := `SELECT p.id, p.name,
			COALESCE(SUM(s.sales_qty), 0),
			COALESCE(SUM(s.sales_qty * p.price), 0),
			COALESCE(SUM(s.sales_qty * p.cost), 0),
			COALESCE(SUM(s.sales_qty * (p.price - p.cost)), 0),
			COALESCE(SUM(p.stock_qty), 0),
			COALESCE(SUM(p.price), 0),
			COALESCE(SUM(p.cost), 0)
		FROM sales s
		INNER JOIN products p ON s.product_id = p.id
		WHERE s.sale_date BETWEEN $1 AND $2
		GROUP BY p.id, p.name
		ORDER BY p.id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, dataAccess("product_sales", err)
	}
	defer rows.Close()

	var out []metrics.ProductSalesRow
	for rows.Next() {
		var row metrics.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.TotalQuantity,
			&row.TotalSales, &row.TotalCost, &row.TotalProfit,
			&row.StockQtySum, &row.PriceSum, &row.CostSum); err != nil {
			return nil, dataAccess("product_sales", err)
		}
		out = append(out, row)
	}
	return out, dataAccess("product_sales", rows.Err())
}

func (r *PostgresAnalyticsRepository) TopProductsByRevenue(ctx context.Context, startDate, endDate string, limit int) ([]ProductRevenue, error) {
	query := `SELECT p.id, p.name, COALESCE(SUM(s.sales_qty * p.price), 0) AS revenue
		FROM sales s
		INNER JOIN products p ON s.product_id = p.id
		WHERE s.sale_date BETWEEN $1 AND $2
		GROUP BY p.id, p.name
		ORDER BY revenue DESC, p.id ASC
		LIMIT $3`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, dataAccess("top_products", err)
	}
	defer rows.Close()

	var out []ProductRevenue
	for rows.Next() {
		var pr ProductRevenue
		if err := rows.Scan(&pr.ProductID, &pr.ProductName, &pr.Revenue); err != nil {
			return nil, dataAccess("top_products", err)
		}
		out = append(out, pr)
	}
	return out, dataAccess("top_products", rows.Err())
}

func (r *PostgresAnalyticsRepository) DailyRevenue(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error) {
	query := `SELECT to_char(s.sale_date, 'YYYY-MM-DD') AS date, COALESCE(SUM(s.sales_qty * p.price), 0)
		FROM sales s
		INNER JOIN products p ON s.product_id = p.id
		WHERE s.sale_date BETWEEN $1 AND $2
		GROUP BY s.sale_date
		ORDER BY s.sale_date`
	return r.dailySeries(ctx, "daily_revenue", query, startDate, endDate)
}

func (r *PostgresAnalyticsRepository) DailyCOGS(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error) {
	query := `SELECT to_char(s.sale_date, 'YYYY-MM-DD') AS date, COALESCE(SUM(s.sales_qty * p.cost), 0)
		FROM sales s
		INNER JOIN products p ON s.product_id = p.id
		WHERE s.sale_date BETWEEN $1 AND $2
		GROUP BY s.sale_date
		ORDER BY s.sale_date`
	return r.dailySeries(ctx, "daily_cogs", query, startDate, endDate)
}

func (r *PostgresAnalyticsRepository) DailyExpenses(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error) {
	query := `SELECT to_char(expense_date, 'YYYY-MM-DD') AS date, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE expense_date BETWEEN $1 AND $2
		GROUP BY expense_date
		ORDER BY expense_date`
	return r.dailySeries(ctx, "daily_expenses", query, startDate, endDate)
}

func (r *PostgresAnalyticsRepository) dailySeries(ctx context.Context, name, query, startDate, endDate string) ([]metrics.DailyAmount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, dataAccess(name, err)
	}
	defer rows.Close()

	var series []metrics.DailyAmount
	for rows.Next() {
		var e metrics.DailyAmount
		if err := rows.Scan(&e.Date, &e.Amount); err != nil {
			return nil, dataAccess(name, err)
		}
		series = append(series, e)
	}
	return series, dataAccess(name, rows.Err())
}

func (r *PostgresAnalyticsRepository) SnapshotSources(ctx context.Context) ([]models.InventorySnapshot, error) {
	// Left join so products that never sold still get a snapshot row.
	query := `SELECT p.id, p.name, p.inventory_qty, COALESCE(SUM(s.sales_qty), 0), p.supply_qty, p.stock_qty
		FROM products p
		LEFT JOIN sales s ON s.product_id = p.id
		GROUP BY p.id, p.name, p.inventory_qty, p.supply_qty, p.stock_qty
		ORDER BY p.id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dataAccess("snapshot_sources", err)
	}
	defer rows.Close()

	var out []models.InventorySnapshot
	for rows.Next() {
		var s models.InventorySnapshot
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.InventoryQty, &s.SalesQty, &s.SupplyQty, &s.StockQty); err != nil {
			return nil, dataAccess("snapshot_sources", err)
		}
		s.AvailableStock = s.InventoryQty - s.SalesQty
		out = append(out, s)
	}
	return out, dataAccess("snapshot_sources", rows.Err())
}
