package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type PersonRepository interface {
	// Upsert inserts the person, or updates the contact details of the
	// existing row with the same kind and name.
	Upsert(ctx context.Context, person models.Person) (models.Person, error)
	Find(ctx context.Context, kind string) ([]models.Person, error)
	GetByID(ctx context.Context, id int) (models.Person, error)
	Delete(ctx context.Context, id int) error
}
