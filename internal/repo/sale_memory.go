package repo

import (
	"context"
	"sort"

	"github.com/salespilot/backoffice/internal/models"
)

type InMemorySaleRepository struct {
	sales  []models.Sale
	nextID int

	// Product lookups resolve names the way the Postgres join does.
	products ProductRepository
}

func NewInMemorySaleRepository(products ProductRepository) *InMemorySaleRepository {
	return &InMemorySaleRepository{nextID: 1, products: products}
}

func (r *InMemorySaleRepository) Create(ctx context.Context, s models.Sale) (models.Sale, error) {
	if p, err := r.products.GetByID(ctx, s.ProductID); err == nil {
		s.ProductName = p.Name
	}
	s.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, s)
	return s, nil
}

func (r *InMemorySaleRepository) GetByID(_ context.Context, id int) (models.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) Find(_ context.Context, f SaleFilter) ([]models.Sale, int, error) {
	var matched []models.Sale
	for _, s := range r.sales {
		if f.ProductID != nil && s.ProductID != *f.ProductID {
			continue
		}
		if f.StartDate != nil && s.SaleDate < *f.StartDate {
			continue
		}
		if f.EndDate != nil && s.SaleDate > *f.EndDate {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SaleDate != matched[j].SaleDate {
			return matched[i].SaleDate > matched[j].SaleDate
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

func (r *InMemorySaleRepository) Update(_ context.Context, s models.Sale) (models.Sale, error) {
	for i, existing := range r.sales {
		if existing.ID == s.ID {
			r.sales[i] = s
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) Delete(_ context.Context, id int) error {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrSaleNotFound
}

func (r *InMemorySaleRepository) All() []models.Sale { return r.sales }

func (r *InMemorySaleRepository) Clear() {
	r.sales = nil
	r.nextID = 1
}
