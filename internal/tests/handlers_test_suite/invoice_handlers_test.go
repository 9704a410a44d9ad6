package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
	"github.com/salespilot/backoffice/internal/models"
)

func TestCreateInvoiceHandler_ComputesTotals(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/invoices", handler.InvoiceRequest{
		InvoiceNo:    "INV-001",
		CustomerName: "Acme Corp",
		IssueDate:    "2024-03-10",
		DueDate:      "2024-04-10",
		Tax:          decimal.NewFromInt(30),
		Items: []handler.InvoiceItemRequest{
			{Name: "Laptop", Qty: 2, UnitPrice: decimal.NewFromInt(1500)},
			{Name: "Mouse", Qty: 1, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var inv models.Invoice
	if err := json.NewDecoder(w.Body).Decode(&inv); err != nil {
		t.Fatalf("error decoding invoice: %v", err)
	}
	if !inv.Subtotal.Equal(decimal.NewFromInt(3030)) {
		t.Errorf("expected subtotal 3030, got %v", inv.Subtotal)
	}
	if !inv.Total.Equal(decimal.NewFromInt(3060)) {
		t.Errorf("expected total 3060, got %v", inv.Total)
	}
	if inv.Status != "draft" {
		t.Errorf("expected default status draft, got %q", inv.Status)
	}

	// The by-ID fetch includes line items; the listing does not.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/invoices/%d", inv.ID), nil)
	var fetched models.Invoice
	if err := json.NewDecoder(w.Body).Decode(&fetched); err != nil {
		t.Fatalf("error decoding invoice: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(fetched.Items))
	}

	w = doJSON(r, http.MethodGet, "/invoices", nil)
	var listing []models.Invoice
	if err := json.NewDecoder(w.Body).Decode(&listing); err != nil {
		t.Fatalf("error decoding listing: %v", err)
	}
	if len(listing) != 1 || len(listing[0].Items) != 0 {
		t.Errorf("expected 1 invoice without items in listing, got %+v", listing)
	}
}

func TestCreateInvoiceHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/invoices", handler.InvoiceRequest{
		InvoiceNo:    "",
		CustomerName: "Acme Corp",
		IssueDate:    "2024-03-10",
		Status:       "archived",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateInvoiceHandler_ReplacesItems(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/invoices", handler.InvoiceRequest{
		InvoiceNo:    "INV-002",
		CustomerName: "Acme Corp",
		IssueDate:    "2024-03-10",
		Items:        []handler.InvoiceItemRequest{{Name: "Laptop", Qty: 1, UnitPrice: decimal.NewFromInt(1500)}},
	})
	var inv models.Invoice
	if err := json.NewDecoder(w.Body).Decode(&inv); err != nil {
		t.Fatalf("error decoding invoice: %v", err)
	}

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/invoices/%d", inv.ID), handler.InvoiceRequest{
		InvoiceNo:    "INV-002",
		CustomerName: "Acme Corp",
		IssueDate:    "2024-03-10",
		Status:       "sent",
		Items:        []handler.InvoiceItemRequest{{Name: "Monitor", Qty: 3, UnitPrice: decimal.NewFromInt(200)}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/invoices/%d", inv.ID), nil)
	var updated models.Invoice
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding invoice: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Name != "Monitor" {
		t.Errorf("expected items replaced with Monitor, got %+v", updated.Items)
	}
	if !updated.Subtotal.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected subtotal 600, got %v", updated.Subtotal)
	}
	if updated.Status != "sent" {
		t.Errorf("expected status sent, got %q", updated.Status)
	}
}
