package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
)

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func importCSV(r http.Handler, csvContent, mode string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, "products.csv")
	url := "/products/import"
	if mode != "" {
		url += "?mode=" + mode
	}
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	csv := "name,price,cost,stock_qty,inventory_qty,supply_qty\n" +
		"Laptop,1500.00,900.00,10,10,5\n" +
		"Mouse,30.00,10.00,50,50,20\n"

	w := importCSV(r, csv, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding result: %v", err)
	}
	if result.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imports, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestImportProductsHandler_SkipAndUpdateModes(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	csv := "name,price,cost\nLaptop,1500.00,900.00\n"
	if w := importCSV(r, csv, ""); w.Code != http.StatusOK {
		t.Fatalf("initial import failed: %d", w.Code)
	}

	// Default skip mode reports the duplicate as an error.
	w := importCSV(r, "name,price,cost\nLaptop,1600.00,950.00\n", "")
	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding result: %v", err)
	}
	if result.ImportedProductsCount != 0 || len(result.Errors) != 1 {
		t.Errorf("skip mode: expected 0 imports and 1 error, got %d/%d", result.ImportedProductsCount, len(result.Errors))
	}

	// Update mode overwrites the existing row.
	w = importCSV(r, "name,price,cost\nLaptop,1600.00,950.00\n", "update")
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding result: %v", err)
	}
	if result.ImportedProductsCount != 1 {
		t.Errorf("update mode: expected 1 import, got %d", result.ImportedProductsCount)
	}
}

func TestImportProductsHandler_InvalidRows(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	csv := "name,price,cost\n" +
		",100.00,50.00\n" +
		"Monitor,-5.00,1.00\n" +
		"Keyboard,80.00,40.00\n"

	w := importCSV(r, csv, "")
	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding result: %v", err)
	}
	if result.ImportedProductsCount != 1 {
		t.Errorf("expected only the valid row imported, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 row errors, got %d", len(result.Errors))
	}
}

func TestImportProductsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := importCSV(r, "name,price\nLaptop,1500.00\n", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing cost column, got %d", w.Code)
	}
}
