// Package report drives the metrics aggregation engine: it pulls raw ledger
// rows through the analytics repository, folds them through the pure
// calculator, and persists one idempotent report row per calendar date.
package report

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salespilot/backoffice/internal/cache"
	"github.com/salespilot/backoffice/internal/config"
	"github.com/salespilot/backoffice/internal/metrics"
	"github.com/salespilot/backoffice/internal/models"
	"github.com/salespilot/backoffice/internal/repo"
)

// TopProductsLimit is the size of the revenue ranking on the dashboard.
const TopProductsLimit = 5

// Notifications is the selector output consumed by the dashboard.
type Notifications struct {
	InventoryAlerts []models.InventorySnapshot `json:"inventory_alerts"`
	RevenueAlerts   []RevenueAlert             `json:"revenue_alerts"`
}

// RevenueAlert flags a product whose revenue in the latest report fell
// outside the configured band.
type RevenueAlert struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	ReportDate  string          `json:"report_date"`
}

type Service struct {
	analytics  repo.AnalyticsRepository
	reports    repo.ReportRepository
	inventory  repo.InventoryRepository
	cache      *cache.ReportCache
	thresholds config.Thresholds
	logger     *zap.Logger
}

// NewService wires the engine. cache may be nil; the service then reads the
// latest report straight from the repository.
func NewService(
	analytics repo.AnalyticsRepository,
	reports repo.ReportRepository,
	inventory repo.InventoryRepository,
	reportCache *cache.ReportCache,
	thresholds config.Thresholds,
	logger *zap.Logger,
) *Service {
	return &Service{
		analytics:  analytics,
		reports:    reports,
		inventory:  inventory,
		cache:      reportCache,
		thresholds: thresholds,
		logger:     logger,
	}
}

// ComputeReport aggregates the ledger over rng and upserts the report row
// keyed by the range's end date. Re-running with unchanged underlying data
// writes an identical row; no duplicate is ever created. Nothing is
// persisted if any read fails.
func (s *Service) ComputeReport(ctx context.Context, rng DateRange) (models.Report, error) {
	if _, err := ParseRange(rng.Start, rng.End); err != nil {
		return models.Report{}, err
	}

	rows, err := s.analytics.ProductSales(ctx, rng.Start, rng.End)
	if err != nil {
		s.logger.Error("metrics run aborted", zap.String("start", rng.Start), zap.String("end", rng.End), zap.Error(err))
		return models.Report{}, err
	}

	perProduct := metrics.PerProduct(rows)
	agg := metrics.Aggregated(perProduct)

	rep := models.Report{
		ReportDate:            rng.End,
		Revenue:               agg.TotalSales,
		ProfitMargin:          agg.ProfitMargin,
		RevenueByProduct:      perProduct,
		GrossMargin:           agg.GrossMargin,
		NetMargin:             agg.NetMargin,
		InventoryTurnoverRate: agg.InventoryTurnoverRate,
		StockToSalesRatio:     agg.StockToSalesRatio,
		SellThroughRate:       agg.SellThroughRate,
		TotalSales:            agg.TotalSales,
		TotalQuantity:         agg.TotalQuantity,
		TotalProfit:           agg.TotalProfit,
		TotalExpenses:         agg.TotalExpenses,
		// The stored net profit is the net margin figure; kept for report
		// compatibility with existing consumers.
		NetProfit: agg.NetMargin,
	}

	saved, err := s.upsertWithRetry(ctx, rep)
	if err != nil {
		return models.Report{}, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateLatest(ctx); err != nil {
			s.logger.Warn("failed to invalidate report cache", zap.Error(err))
		}
	}

	s.logger.Info("report computed",
		zap.String("report_date", saved.ReportDate),
		zap.String("total_sales", saved.TotalSales.String()),
		zap.Int("products", len(saved.RevenueByProduct)),
	)
	return saved, nil
}

func (s *Service) upsertWithRetry(ctx context.Context, rep models.Report) (models.Report, error) {
	saved, err := s.reports.Upsert(ctx, rep)
	if errors.Is(err, repo.ErrUpsertConflict) {
		s.logger.Warn("report upsert conflict, retrying once", zap.String("report_date", rep.ReportDate))
		saved, err = s.reports.Upsert(ctx, rep)
		if errors.Is(err, repo.ErrUpsertConflict) {
			return models.Report{}, &ConflictError{ReportDate: rep.ReportDate}
		}
	}
	return saved, err
}

// IncomeOverview joins the three daily series over rng. The output is driven
// by the revenue series' date set; cost or expenses on revenue-free dates do
// not appear.
func (s *Service) IncomeOverview(ctx context.Context, rng DateRange) ([]metrics.IncomeEntry, error) {
	if _, err := ParseRange(rng.Start, rng.End); err != nil {
		return nil, err
	}

	revenue, err := s.analytics.DailyRevenue(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	cogs, err := s.analytics.DailyCOGS(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	expenses, err := s.analytics.DailyExpenses(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return metrics.IncomeOverview(revenue, cogs, expenses), nil
}

// TopProducts ranks products by revenue over rng, ties broken by product id.
func (s *Service) TopProducts(ctx context.Context, rng DateRange) ([]repo.ProductRevenue, error) {
	if _, err := ParseRange(rng.Start, rng.End); err != nil {
		return nil, err
	}
	return s.analytics.TopProductsByRevenue(ctx, rng.Start, rng.End, TopProductsLimit)
}

// RefreshInventorySnapshots recomputes every snapshot row from the catalog
// and the cumulative sales ledger. Each row is written atomically; the first
// failed write aborts the run.
func (s *Service) RefreshInventorySnapshots(ctx context.Context) error {
	sources, err := s.analytics.SnapshotSources(ctx)
	if err != nil {
		s.logger.Error("snapshot refresh aborted", zap.Error(err))
		return err
	}

	for _, snap := range sources {
		if err := s.inventory.Upsert(ctx, snap); err != nil {
			s.logger.Error("snapshot upsert failed", zap.Int("product_id", snap.ProductID), zap.Error(err))
			return err
		}
	}

	s.logger.Info("inventory snapshots refreshed", zap.Int("products", len(sources)))
	return nil
}

// GetNotifications evaluates both threshold filters on demand. A missing
// latest report is a valid empty result, not an error.
func (s *Service) GetNotifications(ctx context.Context) (Notifications, error) {
	var n Notifications

	inventoryAlerts, err := s.inventory.OutOfRange(ctx, s.thresholds.LowStock, s.thresholds.HighStock)
	if err != nil {
		return Notifications{}, err
	}
	n.InventoryAlerts = inventoryAlerts

	latest, err := s.latestReport(ctx)
	if errors.Is(err, repo.ErrReportNotFound) {
		return n, nil
	}
	if err != nil {
		return Notifications{}, err
	}

	low := decimal.NewFromFloat(s.thresholds.LowRevenue)
	high := decimal.NewFromFloat(s.thresholds.HighRevenue)
	for _, pm := range latest.RevenueByProduct {
		if pm.TotalSales.GreaterThan(high) || pm.TotalSales.LessThan(low) {
			n.RevenueAlerts = append(n.RevenueAlerts, RevenueAlert{
				ProductID:   pm.ProductID,
				ProductName: pm.ProductName,
				Revenue:     pm.TotalSales,
				ReportDate:  latest.ReportDate,
			})
		}
	}
	return n, nil
}

// GetLatestReport serves the dashboard's report card, cache first.
func (s *Service) GetLatestReport(ctx context.Context) (models.Report, error) {
	return s.latestReport(ctx)
}

func (s *Service) latestReport(ctx context.Context) (models.Report, error) {
	if s.cache != nil {
		if rep, err := s.cache.GetLatest(ctx); err == nil {
			return rep, nil
		}
	}

	rep, err := s.reports.Latest(ctx)
	if err != nil {
		return models.Report{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, rep); err != nil {
			s.logger.Warn("failed to cache latest report", zap.Error(err))
		}
	}
	return rep, nil
}
