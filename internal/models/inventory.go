package models

// InventorySnapshot is derived per-product stock state, overwritten on each
// recompute from the sales ledger and catalog. It is not a source of truth:
// available_stock == inventory_qty - cumulative sales qty as of the last
// recompute.
type InventorySnapshot struct {
	ProductID      int    `json:"product_id"`
	ProductName    string `json:"product_name"`
	InventoryQty   int    `json:"inventory_qty"`
	SalesQty       int    `json:"sales_qty"`
	AvailableStock int    `json:"available_stock"`
	SupplyQty      int    `json:"supply_qty"`
	StockQty       int    `json:"stock_qty"`
	LastUpdated    string `json:"last_updated,omitempty"`
}
