package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type InMemoryInvoiceRepository struct {
	invoices   []models.Invoice
	nextID     int
	nextItemID int
}

func NewInMemoryInvoiceRepository() *InMemoryInvoiceRepository {
	return &InMemoryInvoiceRepository{nextID: 1, nextItemID: 1}
}

func (r *InMemoryInvoiceRepository) Create(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	for _, existing := range r.invoices {
		if existing.InvoiceNo == inv.InvoiceNo {
			return models.Invoice{}, ErrDuplicatedValueUnique
		}
	}
	inv.ID = r.nextID
	r.nextID++
	for i := range inv.Items {
		inv.Items[i].ID = r.nextItemID
		inv.Items[i].InvoiceID = inv.ID
		r.nextItemID++
	}
	r.invoices = append(r.invoices, inv)
	return inv, nil
}

func (r *InMemoryInvoiceRepository) GetAll(_ context.Context) ([]models.Invoice, error) {
	// Listing omits line items, matching the Postgres implementation.
	out := make([]models.Invoice, len(r.invoices))
	for i, inv := range r.invoices {
		inv.Items = nil
		out[len(r.invoices)-1-i] = inv
	}
	return out, nil
}

func (r *InMemoryInvoiceRepository) GetByID(_ context.Context, id int) (models.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

func (r *InMemoryInvoiceRepository) Update(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	for i, existing := range r.invoices {
		if existing.ID == inv.ID {
			for j := range inv.Items {
				if inv.Items[j].ID == 0 {
					inv.Items[j].ID = r.nextItemID
					r.nextItemID++
				}
				inv.Items[j].InvoiceID = inv.ID
			}
			r.invoices[i] = inv
			return inv, nil
		}
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

func (r *InMemoryInvoiceRepository) Delete(_ context.Context, id int) error {
	for i, inv := range r.invoices {
		if inv.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return ErrInvoiceNotFound
}

func (r *InMemoryInvoiceRepository) Clear() {
	r.invoices = nil
	r.nextID = 1
	r.nextItemID = 1
}
