package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type InvoiceRepository interface {
	// Create persists the invoice and its line items as one transaction.
	Create(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	GetAll(ctx context.Context) ([]models.Invoice, error)
	GetByID(ctx context.Context, id int) (models.Invoice, error)
	// Update replaces the invoice header and its full item set.
	Update(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	Delete(ctx context.Context, id int) error
}
