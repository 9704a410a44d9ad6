package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry. Price and cost are per unit.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	StockQty     int             `json:"stock_qty"`
	InventoryQty int             `json:"inventory_qty"`
	SupplyQty    int             `json:"supply_qty"`
	ImagePath    string          `json:"image_path,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}
