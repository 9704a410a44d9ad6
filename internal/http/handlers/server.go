package handlers

import (
	"go.uber.org/zap"

	"github.com/salespilot/backoffice/internal/auth"
	"github.com/salespilot/backoffice/internal/payment"
	"github.com/salespilot/backoffice/internal/report"
	repo "github.com/salespilot/backoffice/internal/repo"
)

var (
	productRepo repo.ProductRepository
	saleRepo    repo.SaleRepository
	expenseRepo repo.ExpenseRepository
	invoiceRepo repo.InvoiceRepository
	userRepo    repo.UserRepository
	reportRepo  repo.ReportRepository
	invRepo     repo.InventoryRepository
	personRepo  repo.PersonRepository

	reportService *report.Service
	refreshStore  *auth.RefreshTokenStore
	paypalClient  *payment.PayPalClient

	logger = zap.NewNop()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetExpenseRepo(r repo.ExpenseRepository) {
	expenseRepo = r
}

func SetInvoiceRepo(r repo.InvoiceRepository) {
	invoiceRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetReportRepo(r repo.ReportRepository) {
	reportRepo = r
}

func SetInventoryRepo(r repo.InventoryRepository) {
	invRepo = r
}

func SetPersonRepo(r repo.PersonRepository) {
	personRepo = r
}

func SetReportService(s *report.Service) {
	reportService = s
}

func SetRefreshTokenStore(s *auth.RefreshTokenStore) {
	refreshStore = s
}

func SetPayPalClient(c *payment.PayPalClient) {
	paypalClient = c
}

func SetLogger(l *zap.Logger) {
	logger = l
}
