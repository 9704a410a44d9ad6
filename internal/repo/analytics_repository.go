package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salespilot/backoffice/internal/metrics"
	"github.com/salespilot/backoffice/internal/models"
)

// ProductRevenue is one entry of the top-products ranking.
type ProductRevenue struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// AnalyticsRepository is the read-only data access of the reporting engine.
// Every method is side-effect free; failures carry the logical query name
// via DataAccessError.
type AnalyticsRepository interface {
	// ProductSales aggregates the ledger per product over [startDate, endDate]
	// inclusive, ordered by product_id ascending.
	ProductSales(ctx context.Context, startDate, endDate string) ([]metrics.ProductSalesRow, error)
	// TopProductsByRevenue ranks products by revenue over the range; ties
	// break on product_id ascending so the ranking is deterministic.
	TopProductsByRevenue(ctx context.Context, startDate, endDate string, limit int) ([]ProductRevenue, error)
	DailyRevenue(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error)
	DailyCOGS(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error)
	DailyExpenses(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error)
	// SnapshotSources derives one inventory snapshot per product from the
	// catalog and the cumulative sales ledger (all time).
	SnapshotSources(ctx context.Context) ([]models.InventorySnapshot, error)
}
