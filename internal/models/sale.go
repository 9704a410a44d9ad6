package models

import "github.com/shopspring/decimal"

// DateOnly is the calendar-date layout used across the sales ledger and the
// reporting engine. Daily series are keyed by strings in this layout.
const DateOnly = "2006-01-02"

// Sale is one row of the append-mostly sales ledger. Several sales may share
// a product and date.
type Sale struct {
	ID            int             `json:"id"`
	ProductID     int             `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	SaleDate      string          `json:"sale_date"` // DateOnly layout
	SalesQty      int             `json:"sales_qty"`
	SalesPrice    decimal.Decimal `json:"sales_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	SaleStatus    string          `json:"sale_status,omitempty"`
	PaymentStatus string          `json:"payment_status,omitempty"`
	SaleNote      string          `json:"sale_note,omitempty"`
	StaffName     string          `json:"staff_name,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
}
