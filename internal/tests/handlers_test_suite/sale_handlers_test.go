package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
	"github.com/salespilot/backoffice/internal/models"
)

func seedProduct(t *testing.T, r http.Handler, name string, price, cost int64) models.Product {
	t.Helper()
	w := createProduct(r, handler.ProductRequest{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Cost:     decimal.NewFromInt(cost),
		StockQty: 100,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed product failed: %d %s", w.Code, w.Body.String())
	}
	var p models.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return p
}

func TestCreateSaleHandler_UsesProductPrice(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()
	p := seedProduct(t, r, "Laptop", 1500, 900)

	w := createSale(r, handler.SaleRequest{
		ProductID: p.ID,
		SaleDate:  "2024-03-10",
		SalesQty:  2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var sale models.Sale
	if err := json.NewDecoder(w.Body).Decode(&sale); err != nil {
		t.Fatalf("error decoding sale: %v", err)
	}
	if !sale.SalesPrice.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected unit price 1500, got %v", sale.SalesPrice)
	}
	if !sale.TotalPrice.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected total 3000, got %v", sale.TotalPrice)
	}
}

func TestCreateSaleHandler_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := createSale(r, handler.SaleRequest{
		ProductID: 9999,
		SaleDate:  "2024-03-10",
		SalesQty:  1,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateSaleHandler_InvalidDate(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()
	p := seedProduct(t, r, "Laptop", 1500, 900)

	w := createSale(r, handler.SaleRequest{
		ProductID: p.ID,
		SaleDate:  "10/03/2024",
		SalesQty:  1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetSalesHandler_FiltersAndPaging(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()
	laptop := seedProduct(t, r, "Laptop", 1500, 900)
	mouse := seedProduct(t, r, "Mouse", 30, 10)

	for _, s := range []handler.SaleRequest{
		{ProductID: laptop.ID, SaleDate: "2024-03-10", SalesQty: 1},
		{ProductID: laptop.ID, SaleDate: "2024-03-12", SalesQty: 2},
		{ProductID: mouse.ID, SaleDate: "2024-03-11", SalesQty: 5},
	} {
		if w := createSale(r, s); w.Code != http.StatusCreated {
			t.Fatalf("seed sale failed: %d", w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/sales?product_id="+strconv.Itoa(laptop.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result handler.SalesSearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding result: %v", err)
	}
	if result.Meta.TotalCount != 2 || len(result.Data) != 2 {
		t.Errorf("expected 2 laptop sales, got total=%d len=%d", result.Meta.TotalCount, len(result.Data))
	}

	w = doJSON(r, http.MethodGet, "/sales?limit=1&offset=0", nil)
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding result: %v", err)
	}
	if result.Meta.TotalCount != 3 {
		t.Errorf("expected total count 3 with paging, got %d", result.Meta.TotalCount)
	}
	if len(result.Data) != 1 {
		t.Errorf("expected 1 page row, got %d", len(result.Data))
	}
}
