package models

import "github.com/shopspring/decimal"

// Report is one persisted daily snapshot of aggregate business metrics,
// keyed by report_date. Re-running the computation for the same date
// overwrites the row in place.
type Report struct {
	ID         int    `json:"id"`
	ReportDate string `json:"report_date"` // DateOnly layout

	Revenue          decimal.Decimal  `json:"revenue"`
	ProfitMargin     decimal.Decimal  `json:"profit_margin"`
	RevenueByProduct []ProductMetrics `json:"revenue_by_product"`

	GrossMargin decimal.Decimal `json:"gross_margin"`
	NetMargin   decimal.Decimal `json:"net_margin"`

	// Two turnover and sell-through figures exist on purpose: the aggregate
	// formulas diverge from the per-product ones and are preserved under
	// distinct names rather than silently unified.
	InventoryTurnoverRate decimal.Decimal `json:"inventory_turnover_rate"`
	StockToSalesRatio     decimal.Decimal `json:"stock_to_sales_ratio"`
	SellThroughRate       decimal.Decimal `json:"sell_through_rate"`

	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalQuantity int             `json:"total_quantity"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// ProductMetrics carries the per-product figures embedded in a report's
// revenue_by_product payload.
type ProductMetrics struct {
	ProductID     int             `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalProfit   decimal.Decimal `json:"total_profit"`

	// sales_qty / stock_qty, zero when stock_qty is zero.
	InventoryTurnoverRate decimal.Decimal `json:"inventory_turnover_rate"`
	// (price / cost) * 100, zero when cost is zero.
	SellThroughRate decimal.Decimal `json:"sell_through_rate"`
}
