package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/salespilot/backoffice/internal/metrics"
	"github.com/salespilot/backoffice/internal/models"
	"github.com/salespilot/backoffice/internal/repo"
	"github.com/salespilot/backoffice/internal/report"
)

// Reports are computed and stored at full decimal precision. Monetary
// figures are rounded to 2 places and ratios to 4 only here, on the way out.
func presentReport(rep models.Report) models.Report {
	rep.Revenue = rep.Revenue.Round(2)
	rep.GrossMargin = rep.GrossMargin.Round(2)
	rep.NetMargin = rep.NetMargin.Round(2)
	rep.TotalSales = rep.TotalSales.Round(2)
	rep.TotalProfit = rep.TotalProfit.Round(2)
	rep.TotalExpenses = rep.TotalExpenses.Round(2)
	rep.NetProfit = rep.NetProfit.Round(2)
	rep.ProfitMargin = rep.ProfitMargin.Round(4)
	rep.InventoryTurnoverRate = rep.InventoryTurnoverRate.Round(4)
	rep.StockToSalesRatio = rep.StockToSalesRatio.Round(4)
	rep.SellThroughRate = rep.SellThroughRate.Round(4)
	for i, pm := range rep.RevenueByProduct {
		pm.TotalSales = pm.TotalSales.Round(2)
		pm.TotalCost = pm.TotalCost.Round(2)
		pm.TotalProfit = pm.TotalProfit.Round(2)
		pm.InventoryTurnoverRate = pm.InventoryTurnoverRate.Round(4)
		pm.SellThroughRate = pm.SellThroughRate.Round(4)
		rep.RevenueByProduct[i] = pm
	}
	return rep
}

func presentIncome(entries []metrics.IncomeEntry) []metrics.IncomeEntry {
	for i, e := range entries {
		e.Revenue = e.Revenue.Round(2)
		e.TotalExpenses = e.TotalExpenses.Round(2)
		e.Profit = e.Profit.Round(2)
		entries[i] = e
	}
	return entries
}

func presentTopProducts(top []repo.ProductRevenue) []repo.ProductRevenue {
	for i := range top {
		top[i].Revenue = top[i].Revenue.Round(2)
	}
	return top
}

// rangeFromRequest resolves an explicit start/end pair, falling back to the
// preset query parameter (weekly, monthly or yearly) when neither is given.
func rangeFromRequest(r *http.Request) (report.DateRange, error) {
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")
	if start == "" && end == "" {
		return report.ResolveRange(q.Get("range"), time.Now()), nil
	}
	return report.ParseRange(start, end)
}

func writeReportError(w http.ResponseWriter, err error) {
	var verr *report.ValidationError
	var cerr *report.ConflictError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.As(err, &cerr):
		http.Error(w, cerr.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ComputeReportHandler godoc
// @Summary Compute and persist the metrics report for a date range
// @Description Idempotent: recomputing the same range overwrites the row keyed by its end date
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param range body ComputeReportRequest true "Inclusive date range"
// @Success 200 {object} models.Report
// @Failure 400 {string} string "Invalid range"
// @Failure 409 {string} string "Concurrent update conflict"
// @Router /reports/compute [post]
func ComputeReportHandler(w http.ResponseWriter, r *http.Request) {
	var req ComputeReportRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	rng, err := report.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		writeReportError(w, err)
		return
	}

	rep, err := reportService.ComputeReport(r.Context(), rng)
	if err != nil {
		writeReportError(w, err)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, presentReport(rep)))
}

// GetReportByDateHandler godoc
// @Summary Fetch the report stored for a date
// @Tags reports
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} models.Report
// @Failure 404 {string} string "Not found"
// @Router /reports/{date} [get]
func GetReportByDateHandler(w http.ResponseWriter, r *http.Request) {
	date := urlParam(r, "date")
	if !validDate(date) {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	rep, err := reportRepo.GetByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, repo.ErrReportNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch report", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, presentReport(rep)))
}

// GetLatestReportHandler godoc
// @Summary Fetch the most recent report
// @Tags reports
// @Produce json
// @Success 200 {object} models.Report
// @Failure 404 {string} string "No reports yet"
// @Router /reports/latest [get]
func GetLatestReportHandler(w http.ResponseWriter, r *http.Request) {
	rep, err := reportService.GetLatestReport(r.Context())
	if err != nil {
		if errors.Is(err, repo.ErrReportNotFound) {
			http.Error(w, "no reports yet", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch report", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, presentReport(rep)))
}

// IncomeOverviewHandler godoc
// @Summary Daily revenue, expenses and profit series
// @Description Only dates with revenue appear; missing cost or expense entries count as zero
// @Tags reports
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "weekly|monthly|yearly"
// @Success 200 {array} metrics.IncomeEntry
// @Failure 400 {string} string "Invalid range"
// @Router /reports/income-overview [get]
func IncomeOverviewHandler(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromRequest(r)
	if err != nil {
		writeReportError(w, err)
		return
	}

	entries, err := reportService.IncomeOverview(r.Context(), rng)
	if err != nil {
		writeReportError(w, err)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, presentIncome(entries)))
}

// TopProductsHandler godoc
// @Summary Top products by revenue over a range
// @Tags reports
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "weekly|monthly|yearly"
// @Success 200 {array} repo.ProductRevenue
// @Failure 400 {string} string "Invalid range"
// @Router /reports/top-products [get]
func TopProductsHandler(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromRequest(r)
	if err != nil {
		writeReportError(w, err)
		return
	}

	top, err := reportService.TopProducts(r.Context(), rng)
	if err != nil {
		writeReportError(w, err)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, presentTopProducts(top)))
}

// RefreshInventoryHandler godoc
// @Summary Recompute all inventory snapshots from the ledger
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 500 {string} string "Internal error"
// @Router /inventory/refresh [post]
func RefreshInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := reportService.RefreshInventorySnapshots(r.Context()); err != nil {
		http.Error(w, "could not refresh inventory", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, map[string]string{"message": "inventory refreshed"}))
}
