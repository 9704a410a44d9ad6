// Package metrics holds the pure computation step of the reporting engine.
// Everything here is deterministic over the rows it is handed; data access
// and persistence live in the repo and report packages.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/salespilot/backoffice/internal/models"
)

var hundred = decimal.NewFromInt(100)

// DailyAmount is one entry of a date-keyed money series. Dates use the
// models.DateOnly layout and series are joined by exact string equality.
type DailyAmount struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeEntry is one row of the income overview series.
type IncomeEntry struct {
	Date          string          `json:"date"`
	Revenue       decimal.Decimal `json:"revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Profit        decimal.Decimal `json:"profit"`
}

// ProductSalesRow is a per-product aggregation over the sales ledger for a
// date range, exactly as the data-access layer returns it.
type ProductSalesRow struct {
	ProductID     int
	ProductName   string
	TotalQuantity int
	TotalSales    decimal.Decimal
	TotalCost     decimal.Decimal
	TotalProfit   decimal.Decimal

	// Sums taken over the joined sale rows, feeding the per-product ratio
	// formulas.
	StockQtySum int
	PriceSum    decimal.Decimal
	CostSum     decimal.Decimal
}

// Aggregate carries the report-level figures derived from per-product rows.
type Aggregate struct {
	TotalSales    decimal.Decimal
	TotalQuantity int
	TotalProfit   decimal.Decimal
	TotalCost     decimal.Decimal

	// TotalExpenses here is cost of goods only. The income-overview series
	// uses a different total_expenses (cogs + expense ledger); the two are
	// distinct concepts and must stay separate fields.
	TotalExpenses decimal.Decimal

	GrossMargin  decimal.Decimal
	NetMargin    decimal.Decimal
	ProfitMargin decimal.Decimal

	InventoryTurnoverRate decimal.Decimal
	StockToSalesRatio     decimal.Decimal
	SellThroughRate       decimal.Decimal
}

// IncomeOverview joins the three daily series by date. The output date set is
// driven by the revenue series only: dates that carry cost or expenses but no
// revenue do not appear. Missing cost/expense entries contribute zero.
func IncomeOverview(revenue, cogs, expenses []DailyAmount) []IncomeEntry {
	cogsByDate := indexByDate(cogs)
	expensesByDate := indexByDate(expenses)

	entries := make([]IncomeEntry, 0, len(revenue))
	for _, r := range revenue {
		totalExpenses := cogsByDate[r.Date].Add(expensesByDate[r.Date])
		entries = append(entries, IncomeEntry{
			Date:          r.Date,
			Revenue:       r.Amount,
			TotalExpenses: totalExpenses,
			Profit:        r.Amount.Sub(totalExpenses),
		})
	}
	return entries
}

func indexByDate(series []DailyAmount) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(series))
	for _, e := range series {
		m[e.Date] = m[e.Date].Add(e.Amount)
	}
	return m
}

// PerProduct derives the per-product metric set embedded in a report's
// revenue_by_product payload.
func PerProduct(rows []ProductSalesRow) []models.ProductMetrics {
	out := make([]models.ProductMetrics, 0, len(rows))
	for _, row := range rows {
		pm := models.ProductMetrics{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			TotalQuantity: row.TotalQuantity,
			TotalSales:    row.TotalSales,
			TotalCost:     row.TotalCost,
			TotalProfit:   row.TotalProfit,
		}
		if row.StockQtySum != 0 {
			pm.InventoryTurnoverRate = decimal.NewFromInt(int64(row.TotalQuantity)).
				Div(decimal.NewFromInt(int64(row.StockQtySum)))
		}
		if !row.CostSum.IsZero() {
			pm.SellThroughRate = row.PriceSum.Div(row.CostSum).Mul(hundred)
		}
		out = append(out, pm)
	}
	return out
}

// Aggregated computes the report-level figures. Every ratio is guarded:
// a zero denominator (or zero total sales / quantity) yields zero, never an
// error.
func Aggregated(perProduct []models.ProductMetrics) Aggregate {
	var agg Aggregate
	for _, p := range perProduct {
		agg.TotalSales = agg.TotalSales.Add(p.TotalSales)
		agg.TotalQuantity += p.TotalQuantity
		agg.TotalProfit = agg.TotalProfit.Add(p.TotalProfit)
		agg.TotalCost = agg.TotalCost.Add(p.TotalCost)
	}

	// At this call site total expenses means cost of goods only.
	agg.TotalExpenses = agg.TotalCost

	hasSales := agg.TotalSales.IsPositive()
	hasQuantity := agg.TotalQuantity > 0

	if hasSales {
		agg.GrossMargin = agg.TotalSales.Sub(agg.TotalExpenses)
		agg.NetMargin = agg.TotalProfit.Sub(agg.TotalExpenses)
		agg.ProfitMargin = agg.TotalProfit.Div(agg.TotalSales).Mul(hundred)
		agg.StockToSalesRatio = decimal.NewFromInt(int64(agg.TotalQuantity)).
			Div(agg.TotalSales).Mul(hundred)
	}

	// total_cost / (total_cost / 2) collapses to 2 whenever cost is nonzero.
	// Kept as-is for report compatibility; the real turnover formula is an
	// open product question. See the pinning test.
	if hasQuantity && !agg.TotalCost.IsZero() {
		agg.InventoryTurnoverRate = agg.TotalCost.Div(agg.TotalCost.Div(decimal.NewFromInt(2)))
	}

	if hasQuantity {
		agg.SellThroughRate = agg.TotalSales.
			Div(decimal.NewFromInt(int64(agg.TotalQuantity))).Div(hundred)
	}

	return agg
}
