package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salespilot/backoffice/internal/models"
)

// InMemoryProductRepository backs the handler test suites; no persistence.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

func (r *InMemoryProductRepository) Create(_ context.Context, p models.Product) (models.Product, error) {
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	return r.products, nil
}

func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByName(_ context.Context, name string) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(_ context.Context, p models.Product) (models.Product, error) {
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) UpdateField(_ context.Context, id int, field, value string) error {
	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		switch field {
		case "name":
			r.products[i].Name = value
		case "description":
			r.products[i].Description = value
		case "category":
			r.products[i].Category = value
		case "price":
			price, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", value, err)
			}
			r.products[i].Price = price
		default:
			return fmt.Errorf("field %q is not editable", field)
		}
		r.products[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return nil
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.products = nil
	r.nextID = 1
}
