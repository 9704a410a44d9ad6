package repo

import (
	"context"
	"sort"

	"github.com/salespilot/backoffice/internal/models"
)

type InMemoryPersonRepository struct {
	people []models.Person
	nextID int
}

func NewInMemoryPersonRepository() *InMemoryPersonRepository {
	return &InMemoryPersonRepository{nextID: 1}
}

func (r *InMemoryPersonRepository) Upsert(_ context.Context, p models.Person) (models.Person, error) {
	for i, existing := range r.people {
		if existing.Kind == p.Kind && existing.Name == p.Name {
			p.ID = existing.ID
			r.people[i] = p
			return p, nil
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.people = append(r.people, p)
	return p, nil
}

func (r *InMemoryPersonRepository) Find(_ context.Context, kind string) ([]models.Person, error) {
	var matched []models.Person
	for _, p := range r.people {
		if p.Kind == kind {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (r *InMemoryPersonRepository) GetByID(_ context.Context, id int) (models.Person, error) {
	for _, p := range r.people {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Person{}, ErrPersonNotFound
}

func (r *InMemoryPersonRepository) Delete(_ context.Context, id int) error {
	for i, p := range r.people {
		if p.ID == id {
			r.people = append(r.people[:i], r.people[i+1:]...)
			return nil
		}
	}
	return ErrPersonNotFound
}

func (r *InMemoryPersonRepository) Clear() {
	r.people = nil
	r.nextID = 1
}
