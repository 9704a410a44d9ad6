package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/salespilot/backoffice/internal/models"
)

type ProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	StockQty     int             `json:"stock_qty"`
	InventoryQty int             `json:"inventory_qty"`
	SupplyQty    int             `json:"supply_qty"`
}

type ProductFieldPatchRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type SaleRequest struct {
	ProductID    int    `json:"product_id"`
	SaleDate     string `json:"sale_date"`
	SalesQty     int    `json:"sales_qty"`
	SaleStatus   string `json:"sale_status,omitempty"`
	SaleNote     string `json:"sale_note,omitempty"`
	StaffName    string `json:"staff_name,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

type SalesSearchResult struct {
	Data []models.Sale `json:"data"`
	Meta Meta          `json:"meta,omitempty"`
}

type ExpenseRequest struct {
	ExpenseDate string          `json:"expense_date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type InvoiceItemRequest struct {
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type InvoiceRequest struct {
	InvoiceNo    string               `json:"invoice_no"`
	CustomerName string               `json:"customer_name"`
	IssueDate    string               `json:"issue_date"`
	DueDate      string               `json:"due_date"`
	Status       string               `json:"status"`
	Tax          decimal.Decimal      `json:"tax"`
	Items        []InvoiceItemRequest `json:"items"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLogin is an alias kept for test helpers posting to /login.
type UserLogin = CredentialsRequest

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ComputeReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CreatePaymentOrderRequest struct {
	InvoiceID int    `json:"invoice_id"`
	Currency  string `json:"currency,omitempty"`
}

type PersonRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
