package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	"github.com/salespilot/backoffice/internal/auth"
	"github.com/salespilot/backoffice/internal/config"
	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
	"github.com/salespilot/backoffice/internal/models"
	"github.com/salespilot/backoffice/internal/report"
	"github.com/salespilot/backoffice/internal/repo"
	"go.uber.org/zap"
)

var (
	token         string
	productRepo   *repo.InMemoryProductRepository
	saleRepo      *repo.InMemorySaleRepository
	expenseRepo   *repo.InMemoryExpenseRepository
	invoiceRepo   *repo.InMemoryInvoiceRepository
	reportRepo    *repo.InMemoryReportRepository
	inventoryRepo *repo.InMemoryInventoryRepository
	personRepo    *repo.InMemoryPersonRepository
)

var testThresholds = config.Thresholds{LowStock: 10, HighStock: 1000, LowRevenue: 1000, HighRevenue: 10000}

func init() {
	auth.Configure("test-secret")
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	saleRepo = repo.NewInMemorySaleRepository(productRepo)
	handler.SetSaleRepo(saleRepo)

	expenseRepo = repo.NewInMemoryExpenseRepository()
	handler.SetExpenseRepo(expenseRepo)

	invoiceRepo = repo.NewInMemoryInvoiceRepository()
	handler.SetInvoiceRepo(invoiceRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	analyticsRepo := repo.NewInMemoryAnalyticsRepository()
	analyticsRepo.SetRepositories(productRepo, saleRepo, expenseRepo)

	reportRepo = repo.NewInMemoryReportRepository()
	handler.SetReportRepo(reportRepo)

	inventoryRepo = repo.NewInMemoryInventoryRepository()
	handler.SetInventoryRepo(inventoryRepo)

	personRepo = repo.NewInMemoryPersonRepository()
	handler.SetPersonRepo(personRepo)

	handler.SetReportService(report.NewService(
		analyticsRepo, reportRepo, inventoryRepo, nil, testThresholds, zap.NewNop()))
}

func clearAllData() {
	productRepo.Clear()
	saleRepo.Clear()
	expenseRepo.Clear()
	invoiceRepo.Clear()
	reportRepo.Clear()
	inventoryRepo.Clear()
	personRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p)
}

func createSale(r http.Handler, s handler.SaleRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/sales", s)
}

func createExpense(r http.Handler, e handler.ExpenseRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/expenses", e)
}

func computeReport(r http.Handler, start, end string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/reports/compute", handler.ComputeReportRequest{
		StartDate: start,
		EndDate:   end,
	})
}
