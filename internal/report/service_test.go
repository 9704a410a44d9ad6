package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salespilot/backoffice/internal/config"
	"github.com/salespilot/backoffice/internal/metrics"
	"github.com/salespilot/backoffice/internal/models"
	"github.com/salespilot/backoffice/internal/repo"
)

type serviceFixture struct {
	service   *Service
	products  *repo.InMemoryProductRepository
	sales     *repo.InMemorySaleRepository
	expenses  *repo.InMemoryExpenseRepository
	reports   *repo.InMemoryReportRepository
	inventory *repo.InMemoryInventoryRepository
}

func newServiceFixture() *serviceFixture {
	products := repo.NewInMemoryProductRepository()
	sales := repo.NewInMemorySaleRepository(products)
	expenses := repo.NewInMemoryExpenseRepository()
	analytics := repo.NewInMemoryAnalyticsRepository()
	analytics.SetRepositories(products, sales, expenses)
	reports := repo.NewInMemoryReportRepository()
	inventory := repo.NewInMemoryInventoryRepository()

	thresholds := config.Thresholds{LowStock: 10, HighStock: 1000, LowRevenue: 1000, HighRevenue: 10000}
	svc := NewService(analytics, reports, inventory, nil, thresholds, zap.NewNop())

	return &serviceFixture{
		service:   svc,
		products:  products,
		sales:     sales,
		expenses:  expenses,
		reports:   reports,
		inventory: inventory,
	}
}

func (f *serviceFixture) seedProduct(t *testing.T, name string, price, cost string, stockQty, inventoryQty int) models.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), models.Product{
		Name:         name,
		Price:        mustDec(t, price),
		Cost:         mustDec(t, cost),
		StockQty:     stockQty,
		InventoryQty: inventoryQty,
	})
	if err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}
	return p
}

func (f *serviceFixture) seedSale(t *testing.T, productID, qty int, date string) {
	t.Helper()
	if _, err := f.sales.Create(context.Background(), models.Sale{
		ProductID: productID,
		SalesQty:  qty,
		SaleDate:  date,
	}); err != nil {
		t.Fatalf("seed sale for product %d: %v", productID, err)
	}
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestComputeReportIsIdempotent(t *testing.T) {
	f := newServiceFixture()
	p := f.seedProduct(t, "Widget", "25.00", "10.00", 50, 50)
	f.seedSale(t, p.ID, 4, "2024-03-10")

	rng := DateRange{Start: "2024-03-01", End: "2024-03-31"}

	first, err := f.service.ComputeReport(context.Background(), rng)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := f.service.ComputeReport(context.Background(), rng)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}

	if f.reports.Count() != 1 {
		t.Fatalf("expected a single report row, got %d", f.reports.Count())
	}
	if first.ID != second.ID {
		t.Errorf("rerun changed report identity: %d vs %d", first.ID, second.ID)
	}
	if !first.TotalSales.Equal(second.TotalSales) {
		t.Errorf("rerun changed total sales: %s vs %s", first.TotalSales, second.TotalSales)
	}
	if first.ReportDate != rng.End {
		t.Errorf("report keyed on %q, want range end %q", first.ReportDate, rng.End)
	}
}

func TestComputeReportOverwritesAfterNewSales(t *testing.T) {
	f := newServiceFixture()
	p := f.seedProduct(t, "Widget", "25.00", "10.00", 50, 50)
	f.seedSale(t, p.ID, 4, "2024-03-10")

	rng := DateRange{Start: "2024-03-01", End: "2024-03-31"}
	first, err := f.service.ComputeReport(context.Background(), rng)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}

	f.seedSale(t, p.ID, 2, "2024-03-11")
	second, err := f.service.ComputeReport(context.Background(), rng)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}

	if f.reports.Count() != 1 {
		t.Fatalf("expected overwrite in place, got %d rows", f.reports.Count())
	}
	wantFirst := mustDec(t, "100.00")
	wantSecond := mustDec(t, "150.00")
	if !first.TotalSales.Equal(wantFirst) {
		t.Errorf("first total sales = %s, want %s", first.TotalSales, wantFirst)
	}
	if !second.TotalSales.Equal(wantSecond) {
		t.Errorf("second total sales = %s, want %s", second.TotalSales, wantSecond)
	}
}

func TestComputeReportRejectsInvalidRange(t *testing.T) {
	f := newServiceFixture()

	cases := []struct {
		name string
		rng  DateRange
	}{
		{"malformed start", DateRange{Start: "03/01/2024", End: "2024-03-31"}},
		{"end before start", DateRange{Start: "2024-03-31", End: "2024-03-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.ComputeReport(context.Background(), tc.rng)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if f.reports.Count() != 0 {
				t.Errorf("invalid range must not persist anything, got %d rows", f.reports.Count())
			}
		})
	}
}

func TestComputeReportEmptyRangeIsValid(t *testing.T) {
	f := newServiceFixture()
	f.seedProduct(t, "Widget", "25.00", "10.00", 50, 50)

	rep, err := f.service.ComputeReport(context.Background(), DateRange{Start: "2024-03-01", End: "2024-03-31"})
	if err != nil {
		t.Fatalf("compute over empty range: %v", err)
	}
	if !rep.TotalSales.IsZero() || rep.TotalQuantity != 0 {
		t.Errorf("empty range should yield zero aggregates, got sales=%s qty=%d", rep.TotalSales, rep.TotalQuantity)
	}
	if len(rep.RevenueByProduct) != 0 {
		t.Errorf("empty range should yield no per-product rows, got %d", len(rep.RevenueByProduct))
	}
	if f.reports.Count() != 1 {
		t.Errorf("zero-valued report should still be persisted, got %d rows", f.reports.Count())
	}
}

func TestRefreshInventorySnapshots(t *testing.T) {
	f := newServiceFixture()
	sold := f.seedProduct(t, "Widget", "25.00", "10.00", 50, 40)
	unsold := f.seedProduct(t, "Gadget", "80.00", "60.00", 20, 15)
	f.seedSale(t, sold.ID, 3, "2024-03-10")
	f.seedSale(t, sold.ID, 4, "2024-03-12")

	if err := f.service.RefreshInventorySnapshots(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snaps, err := f.inventory.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected snapshots for every product, got %d", len(snaps))
	}

	byID := map[int]models.InventorySnapshot{}
	for _, s := range snaps {
		byID[s.ProductID] = s
	}
	if got := byID[sold.ID]; got.SalesQty != 7 || got.AvailableStock != 33 {
		t.Errorf("sold product snapshot = sales %d, available %d; want 7, 33", got.SalesQty, got.AvailableStock)
	}
	if got := byID[unsold.ID]; got.SalesQty != 0 || got.AvailableStock != 15 {
		t.Errorf("unsold product snapshot = sales %d, available %d; want 0, 15", got.SalesQty, got.AvailableStock)
	}
}

func TestGetNotificationsFiltersByThresholds(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	snaps := []models.InventorySnapshot{
		{ProductID: 1, ProductName: "Scarce", AvailableStock: 5},
		{ProductID: 2, ProductName: "Normal", AvailableStock: 500},
		{ProductID: 3, ProductName: "Hoarded", AvailableStock: 1500},
	}
	for _, s := range snaps {
		if err := f.inventory.Upsert(ctx, s); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}

	_, err := f.reports.Upsert(ctx, models.Report{
		ReportDate: "2024-03-31",
		RevenueByProduct: []models.ProductMetrics{
			{ProductID: 1, ProductName: "Scarce", TotalSales: mustDec(t, "150")},
			{ProductID: 2, ProductName: "Normal", TotalSales: mustDec(t, "5000")},
			{ProductID: 3, ProductName: "Hoarded", TotalSales: mustDec(t, "25000")},
		},
	})
	if err != nil {
		t.Fatalf("seed report: %v", err)
	}

	n, err := f.service.GetNotifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}

	if len(n.InventoryAlerts) != 2 {
		t.Fatalf("expected 2 inventory alerts, got %d", len(n.InventoryAlerts))
	}
	for _, a := range n.InventoryAlerts {
		if a.ProductID == 2 {
			t.Errorf("in-band stock (500) must not alert")
		}
	}

	if len(n.RevenueAlerts) != 2 {
		t.Fatalf("expected 2 revenue alerts, got %d", len(n.RevenueAlerts))
	}
	for _, a := range n.RevenueAlerts {
		if a.ProductID == 2 {
			t.Errorf("in-band revenue (5000) must not alert")
		}
		if a.ReportDate != "2024-03-31" {
			t.Errorf("alert carries report date %q, want 2024-03-31", a.ReportDate)
		}
	}
}

func TestGetNotificationsBoundaryValuesDoNotAlert(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	for _, s := range []models.InventorySnapshot{
		{ProductID: 1, AvailableStock: 10},
		{ProductID: 2, AvailableStock: 1000},
	} {
		if err := f.inventory.Upsert(ctx, s); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}
	_, err := f.reports.Upsert(ctx, models.Report{
		ReportDate: "2024-03-31",
		RevenueByProduct: []models.ProductMetrics{
			{ProductID: 1, TotalSales: mustDec(t, "1000")},
			{ProductID: 2, TotalSales: mustDec(t, "10000")},
		},
	})
	if err != nil {
		t.Fatalf("seed report: %v", err)
	}

	n, err := f.service.GetNotifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(n.InventoryAlerts) != 0 {
		t.Errorf("stock exactly on a threshold must not alert, got %d alerts", len(n.InventoryAlerts))
	}
	if len(n.RevenueAlerts) != 0 {
		t.Errorf("revenue exactly on a threshold must not alert, got %d alerts", len(n.RevenueAlerts))
	}
}

func TestGetNotificationsWithoutReportIsEmptyNotError(t *testing.T) {
	f := newServiceFixture()

	n, err := f.service.GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("missing latest report should not be an error, got %v", err)
	}
	if len(n.RevenueAlerts) != 0 {
		t.Errorf("expected no revenue alerts without a report, got %d", len(n.RevenueAlerts))
	}
}

func TestIncomeOverviewThroughService(t *testing.T) {
	f := newServiceFixture()
	p := f.seedProduct(t, "Widget", "25.00", "10.00", 50, 50)
	f.seedSale(t, p.ID, 4, "2024-03-10")
	if _, err := f.expenses.Create(context.Background(), models.Expense{
		ExpenseDate: "2024-03-10",
		Amount:      mustDec(t, "15.00"),
	}); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	// Expense on a revenue-free date; the join must drop it.
	if _, err := f.expenses.Create(context.Background(), models.Expense{
		ExpenseDate: "2024-03-11",
		Amount:      mustDec(t, "99.00"),
	}); err != nil {
		t.Fatalf("seed expense: %v", err)
	}

	entries, err := f.service.IncomeOverview(context.Background(), DateRange{Start: "2024-03-01", End: "2024-03-31"})
	if err != nil {
		t.Fatalf("income overview: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry (revenue dates only), got %d", len(entries))
	}
	// cogs (4 * 10) plus the expense ledger entry; profit is revenue minus both.
	want := metrics.IncomeEntry{
		Date:          "2024-03-10",
		Revenue:       mustDec(t, "100.00"),
		TotalExpenses: mustDec(t, "55.00"),
		Profit:        mustDec(t, "45.00"),
	}
	got := entries[0]
	if got.Date != want.Date || !got.Revenue.Equal(want.Revenue) ||
		!got.TotalExpenses.Equal(want.TotalExpenses) || !got.Profit.Equal(want.Profit) {
		t.Errorf("entry = %+v, want %+v", got, want)
	}
}

func TestTopProductsRankingAndLimit(t *testing.T) {
	f := newServiceFixture()
	for i := 0; i < 7; i++ {
		p := f.seedProduct(t, fmt.Sprintf("P%d", i), "10.00", "4.00", 10, 10)
		f.seedSale(t, p.ID, i+1, "2024-03-10")
	}

	top, err := f.service.TopProducts(context.Background(), DateRange{Start: "2024-03-01", End: "2024-03-31"})
	if err != nil {
		t.Fatalf("top products: %v", err)
	}
	if len(top) != TopProductsLimit {
		t.Fatalf("expected ranking capped at %d, got %d", TopProductsLimit, len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Revenue.GreaterThan(top[i-1].Revenue) {
			t.Errorf("ranking not descending at position %d", i)
		}
	}
}
