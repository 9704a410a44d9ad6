package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

// ProductFieldAllowList enumerates the columns the inline product editor may
// touch. Field names outside this list are rejected before any SQL is built;
// column names are never interpolated from input.
var ProductFieldAllowList = map[string]bool{
	"name":        true,
	"description": true,
	"category":    true,
	"price":       true,
}

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	GetByName(ctx context.Context, name string) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	// UpdateField applies a single allow-listed field edit.
	UpdateField(ctx context.Context, id int, field, value string) error
	Delete(ctx context.Context, id int) error
}
