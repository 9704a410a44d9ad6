package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
	"github.com/salespilot/backoffice/internal/models"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{
		Name:     "Laptop",
		Price:    decimal.NewFromInt(1500),
		Cost:     decimal.NewFromInt(900),
		StockQty: 10,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.Product
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Laptop" {
		t.Errorf("expected name 'Laptop', got %v", resp.Name)
	}
	if !resp.Price.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected price 1500, got %v", resp.Price)
	}
	if resp.ID == 0 {
		t.Errorf("expected assigned ID")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name and price",
			payload:        handler.ProductRequest{Name: ""},
			expectedErrors: []string{"Name", "Price"},
		},
		{
			name:           "Negative price",
			payload:        handler.ProductRequest{Name: "Mouse", Price: decimal.NewFromInt(-5)},
			expectedErrors: []string{"Price"},
		},
		{
			name: "Negative stock",
			payload: handler.ProductRequest{
				Name: "Keyboard", Price: decimal.NewFromInt(50), StockQty: -1,
			},
			expectedErrors: []string{"Quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var errs []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
				t.Fatalf("error decoding validation errors: %v", err)
			}
			for _, expected := range tt.expectedErrors {
				found := false
				for _, e := range errs {
					if e.Field == expected {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected validation error for field %q", expected)
				}
			}
		})
	}
}

func TestCreateProductHandler_RequiresToken(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	body := strings.NewReader(`{"name":"Laptop","price":"1500"}`)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPatchProductFieldHandler(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{
		Name: "Laptop", Price: decimal.NewFromInt(1500), Cost: decimal.NewFromInt(900),
	})
	var created models.Product
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/products/%d", created.ID),
		handler.ProductFieldPatchRequest{Field: "price", Value: "1200"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil)
	var fetched models.Product
	if err := json.NewDecoder(w.Body).Decode(&fetched); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !fetched.Price.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected patched price 1200, got %v", fetched.Price)
	}
}

func TestPatchProductFieldHandler_RejectsNonEditableField(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{
		Name: "Laptop", Price: decimal.NewFromInt(1500),
	})
	var created models.Product
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/products/%d", created.ID),
		handler.ProductFieldPatchRequest{Field: "stock_qty", Value: "0"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-editable field, got %d", w.Code)
	}
}

func TestDeleteProductHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodDelete, "/products/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
