package repo

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/salespilot/backoffice/internal/metrics"
	"github.com/salespilot/backoffice/internal/models"
)

// InMemoryAnalyticsRepository recomputes the aggregation queries over the
// in-memory ledgers, mirroring the SQL the Postgres implementation runs.
type InMemoryAnalyticsRepository struct {
	products *InMemoryProductRepository
	sales    *InMemorySaleRepository
	expenses *InMemoryExpenseRepository
}

func NewInMemoryAnalyticsRepository() *InMemoryAnalyticsRepository {
	return &InMemoryAnalyticsRepository{}
}

func (r *InMemoryAnalyticsRepository) SetRepositories(
	products *InMemoryProductRepository,
	sales *InMemorySaleRepository,
	expenses *InMemoryExpenseRepository,
) {
	r.products = products
	r.sales = sales
	r.expenses = expenses
}

func (r *InMemoryAnalyticsRepository) ProductSales(ctx context.Context, startDate, endDate string) ([]metrics.ProductSalesRow, error) {
	byProduct := map[int]*metrics.ProductSalesRow{}
	for _, s := range r.salesInRange(startDate, endDate) {
		p, err := r.products.GetByID(ctx, s.ProductID)
		if err != nil {
			continue
		}
		row, ok := byProduct[p.ID]
		if !ok {
			row = &metrics.ProductSalesRow{ProductID: p.ID, ProductName: p.Name}
			byProduct[p.ID] = row
		}
		qty := decimal.NewFromInt(int64(s.SalesQty))
		row.TotalQuantity += s.SalesQty
		row.TotalSales = row.TotalSales.Add(qty.Mul(p.Price))
		row.TotalCost = row.TotalCost.Add(qty.Mul(p.Cost))
		row.TotalProfit = row.TotalProfit.Add(qty.Mul(p.Price.Sub(p.Cost)))
		row.StockQtySum += p.StockQty
		row.PriceSum = row.PriceSum.Add(p.Price)
		row.CostSum = row.CostSum.Add(p.Cost)
	}

	out := make([]metrics.ProductSalesRow, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *InMemoryAnalyticsRepository) TopProductsByRevenue(ctx context.Context, startDate, endDate string, limit int) ([]ProductRevenue, error) {
	rows, err := r.ProductSales(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	ranking := make([]ProductRevenue, 0, len(rows))
	for _, row := range rows {
		ranking = append(ranking, ProductRevenue{ProductID: row.ProductID, ProductName: row.ProductName, Revenue: row.TotalSales})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if !ranking[i].Revenue.Equal(ranking[j].Revenue) {
			return ranking[i].Revenue.GreaterThan(ranking[j].Revenue)
		}
		return ranking[i].ProductID < ranking[j].ProductID
	})
	if limit > 0 && limit < len(ranking) {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

func (r *InMemoryAnalyticsRepository) DailyRevenue(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error) {
	return r.dailySales(ctx, startDate, endDate, func(p models.Product) decimal.Decimal { return p.Price })
}

func (r *InMemoryAnalyticsRepository) DailyCOGS(ctx context.Context, startDate, endDate string) ([]metrics.DailyAmount, error) {
	return r.dailySales(ctx, startDate, endDate, func(p models.Product) decimal.Decimal { return p.Cost })
}

func (r *InMemoryAnalyticsRepository) dailySales(ctx context.Context, startDate, endDate string, unit func(models.Product) decimal.Decimal) ([]metrics.DailyAmount, error) {
	byDate := map[string]decimal.Decimal{}
	for _, s := range r.salesInRange(startDate, endDate) {
		p, err := r.products.GetByID(ctx, s.ProductID)
		if err != nil {
			continue
		}
		byDate[s.SaleDate] = byDate[s.SaleDate].Add(decimal.NewFromInt(int64(s.SalesQty)).Mul(unit(p)))
	}
	return sortedSeries(byDate), nil
}

func (r *InMemoryAnalyticsRepository) DailyExpenses(_ context.Context, startDate, endDate string) ([]metrics.DailyAmount, error) {
	byDate := map[string]decimal.Decimal{}
	for _, e := range r.expenses.All() {
		if e.ExpenseDate < startDate || e.ExpenseDate > endDate {
			continue
		}
		byDate[e.ExpenseDate] = byDate[e.ExpenseDate].Add(e.Amount)
	}
	return sortedSeries(byDate), nil
}

func (r *InMemoryAnalyticsRepository) SnapshotSources(ctx context.Context) ([]models.InventorySnapshot, error) {
	products, err := r.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	soldByProduct := map[int]int{}
	for _, s := range r.sales.All() {
		soldByProduct[s.ProductID] += s.SalesQty
	}

	out := make([]models.InventorySnapshot, 0, len(products))
	for _, p := range products {
		sold := soldByProduct[p.ID]
		out = append(out, models.InventorySnapshot{
			ProductID:      p.ID,
			ProductName:    p.Name,
			InventoryQty:   p.InventoryQty,
			SalesQty:       sold,
			AvailableStock: p.InventoryQty - sold,
			SupplyQty:      p.SupplyQty,
			StockQty:       p.StockQty,
		})
	}
	return out, nil
}

func (r *InMemoryAnalyticsRepository) salesInRange(startDate, endDate string) []models.Sale {
	var out []models.Sale
	for _, s := range r.sales.All() {
		if s.SaleDate < startDate || s.SaleDate > endDate {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sortedSeries(byDate map[string]decimal.Decimal) []metrics.DailyAmount {
	series := make([]metrics.DailyAmount, 0, len(byDate))
	for date, amount := range byDate {
		series = append(series, metrics.DailyAmount{Date: date, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
