package handlers

import (
	"strings"
	"time"

	"github.com/salespilot/backoffice/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price.IsNegative() || p.Price.IsZero() {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Cost.IsNegative() {
		errs = append(errs, ProductValidationError{Field: "Cost", Description: "Cost cannot be negative"})
	}
	if p.StockQty < 0 || p.InventoryQty < 0 || p.SupplyQty < 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantities cannot be negative"})
	}
	return errs
}

func validateSale(s SaleRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if s.ProductID <= 0 {
		errs = append(errs, ProductValidationError{Field: "ProductID", Description: "Product is required"})
	}
	if s.SalesQty <= 0 {
		errs = append(errs, ProductValidationError{Field: "SalesQty", Description: "Quantity must be greater than zero"})
	}
	if !validDate(s.SaleDate) {
		errs = append(errs, ProductValidationError{Field: "SaleDate", Description: "Sale date must be YYYY-MM-DD"})
	}
	return errs
}

func validateExpense(e ExpenseRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if e.Amount.IsNegative() || e.Amount.IsZero() {
		errs = append(errs, ProductValidationError{Field: "Amount", Description: "Amount must be greater than zero"})
	}
	if !validDate(e.ExpenseDate) {
		errs = append(errs, ProductValidationError{Field: "ExpenseDate", Description: "Expense date must be YYYY-MM-DD"})
	}
	return errs
}

var invoiceStatuses = map[string]bool{"draft": true, "sent": true, "paid": true, "void": true}

func validateInvoice(i InvoiceRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(i.InvoiceNo) == "" {
		errs = append(errs, ProductValidationError{Field: "InvoiceNo", Description: "Invoice number is required"})
	}
	if strings.TrimSpace(i.CustomerName) == "" {
		errs = append(errs, ProductValidationError{Field: "CustomerName", Description: "Customer name is required"})
	}
	if i.Status != "" && !invoiceStatuses[i.Status] {
		errs = append(errs, ProductValidationError{Field: "Status", Description: "Status must be draft, sent, paid or void"})
	}
	if !validDate(i.IssueDate) {
		errs = append(errs, ProductValidationError{Field: "IssueDate", Description: "Issue date must be YYYY-MM-DD"})
	}
	if len(i.Items) == 0 {
		errs = append(errs, ProductValidationError{Field: "Items", Description: "At least one line item is required"})
	}
	for _, item := range i.Items {
		if strings.TrimSpace(item.Name) == "" || item.Qty <= 0 {
			errs = append(errs, ProductValidationError{Field: "Items", Description: "Each item needs a name and a positive quantity"})
			break
		}
	}
	return errs
}

func validatePerson(kind string, p PersonRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, ProductValidationError{Field: "Email", Description: "Email is required"})
	}
	if strings.TrimSpace(p.Phone) == "" {
		errs = append(errs, ProductValidationError{Field: "Phone", Description: "Phone is required"})
	}
	// Staff contacts carry no location.
	if kind != models.PersonKindStaff && strings.TrimSpace(p.Location) == "" {
		errs = append(errs, ProductValidationError{Field: "Location", Description: "Location is required"})
	}
	return errs
}

func validDate(s string) bool {
	_, err := time.Parse(models.DateOnly, s)
	return err == nil
}
