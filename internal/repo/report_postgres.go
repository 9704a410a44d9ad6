package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/salespilot/backoffice/internal/models"
)

type PostgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

const reportColumns = `id, to_char(report_date, 'YYYY-MM-DD'), revenue, profit_margin, revenue_by_product,
	gross_margin, net_margin, inventory_turnover_rate, stock_to_sales_ratio, sell_through_rate,
	total_sales, total_quantity, total_profit, total_expenses, net_profit`

func (r *PostgresReportRepository) Upsert(ctx context.Context, rep models.Report) (models.Report, error) {
	payload, err := json.Marshal(rep.RevenueByProduct)
	if err != nil {
		return models.Report{}, dataAccess("report_upsert", err)
	}

	query := `INSERT INTO reports (report_date, revenue, profit_margin, revenue_by_product, gross_margin, net_margin,
			inventory_turnover_rate, stock_to_sales_ratio, sell_through_rate,
			total_sales, total_quantity, total_profit, total_expenses, net_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (report_date) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			profit_margin = EXCLUDED.profit_margin,
			revenue_by_product = EXCLUDED.revenue_by_product,
			gross_margin = EXCLUDED.gross_margin,
			net_margin = EXCLUDED.net_margin,
			inventory_turnover_rate = EXCLUDED.inventory_turnover_rate,
			stock_to_sales_ratio = EXCLUDED.stock_to_sales_ratio,
			sell_through_rate = EXCLUDED.sell_through_rate,
			total_sales = EXCLUDED.total_sales,
			total_quantity = EXCLUDED.total_quantity,
			total_profit = EXCLUDED.total_profit,
			total_expenses = EXCLUDED.total_expenses,
			net_profit = EXCLUDED.net_profit
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err = r.db.QueryRowContext(ctx, query,
		rep.ReportDate, rep.Revenue, rep.ProfitMargin, payload, rep.GrossMargin, rep.NetMargin,
		rep.InventoryTurnoverRate, rep.StockToSalesRatio, rep.SellThroughRate,
		rep.TotalSales, rep.TotalQuantity, rep.TotalProfit, rep.TotalExpenses, rep.NetProfit).Scan(&rep.ID)
	if isSerializationFailure(err) || isUniqueViolation(err) {
		return models.Report{}, ErrUpsertConflict
	}
	if err != nil {
		return models.Report{}, dataAccess("report_upsert", err)
	}
	return rep, nil
}

func (r *PostgresReportRepository) GetByDate(ctx context.Context, date string) (models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE report_date = $1`, date)
	return scanReport(row, "report_by_date")
}

func (r *PostgresReportRepository) Latest(ctx context.Context) (models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY report_date DESC LIMIT 1`)
	return scanReport(row, "report_latest")
}

func scanReport(row *sql.Row, queryName string) (models.Report, error) {
	var rep models.Report
	var payload []byte
	err := row.Scan(&rep.ID, &rep.ReportDate, &rep.Revenue, &rep.ProfitMargin, &payload,
		&rep.GrossMargin, &rep.NetMargin, &rep.InventoryTurnoverRate, &rep.StockToSalesRatio, &rep.SellThroughRate,
		&rep.TotalSales, &rep.TotalQuantity, &rep.TotalProfit, &rep.TotalExpenses, &rep.NetProfit)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrReportNotFound
	}
	if err != nil {
		return models.Report{}, dataAccess(queryName, err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &rep.RevenueByProduct); err != nil {
			return models.Report{}, dataAccess(queryName, err)
		}
	}
	return rep, nil
}
