package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type InventoryRepository interface {
	// Upsert writes one snapshot row keyed by product_id, atomically
	// (insert-on-conflict-update, never lookup-then-branch).
	Upsert(ctx context.Context, snap models.InventorySnapshot) error
	GetAll(ctx context.Context) ([]models.InventorySnapshot, error)
	// OutOfRange returns snapshots whose available stock is below low or
	// above high, most recently updated first.
	OutOfRange(ctx context.Context, low, high int) ([]models.InventorySnapshot, error)
}
