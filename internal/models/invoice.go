package models

import "github.com/shopspring/decimal"

// Invoice groups billed line items for a customer. PDF rendering is owned by
// the presentation layer, not this service.
type Invoice struct {
	ID           int             `json:"id"`
	InvoiceNo    string          `json:"invoice_no"`
	CustomerName string          `json:"customer_name"`
	IssueDate    string          `json:"issue_date"` // DateOnly layout
	DueDate      string          `json:"due_date"`   // DateOnly layout
	Status       string          `json:"status"`     // draft|sent|paid|void
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Items        []InvoiceItem   `json:"items,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

type InvoiceItem struct {
	ID        int             `json:"id"`
	InvoiceID int             `json:"invoice_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}
