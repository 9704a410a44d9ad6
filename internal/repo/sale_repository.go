package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

// SaleFilter narrows ledger listings. Dates use the models.DateOnly layout;
// nil means unbounded.
type SaleFilter struct {
	ProductID *int
	StartDate *string
	EndDate   *string
	Limit     *int
	Offset    *int
}

type SaleRepository interface {
	Create(ctx context.Context, sale models.Sale) (models.Sale, error)
	GetByID(ctx context.Context, id int) (models.Sale, error)
	Find(ctx context.Context, filter SaleFilter) ([]models.Sale, int, error)
	Update(ctx context.Context, sale models.Sale) (models.Sale, error)
	Delete(ctx context.Context, id int) error
}
