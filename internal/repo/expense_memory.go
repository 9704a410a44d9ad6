package repo

import (
	"context"
	"sort"

	"github.com/salespilot/backoffice/internal/models"
)

type InMemoryExpenseRepository struct {
	expenses []models.Expense
	nextID   int
}

func NewInMemoryExpenseRepository() *InMemoryExpenseRepository {
	return &InMemoryExpenseRepository{nextID: 1}
}

func (r *InMemoryExpenseRepository) Create(_ context.Context, e models.Expense) (models.Expense, error) {
	e.ID = r.nextID
	r.nextID++
	r.expenses = append(r.expenses, e)
	return e, nil
}

func (r *InMemoryExpenseRepository) Find(_ context.Context, startDate, endDate *string) ([]models.Expense, error) {
	var matched []models.Expense
	for _, e := range r.expenses {
		if startDate != nil && e.ExpenseDate < *startDate {
			continue
		}
		if endDate != nil && e.ExpenseDate > *endDate {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ExpenseDate != matched[j].ExpenseDate {
			return matched[i].ExpenseDate > matched[j].ExpenseDate
		}
		return matched[i].ID > matched[j].ID
	})
	return matched, nil
}

func (r *InMemoryExpenseRepository) Delete(_ context.Context, id int) error {
	for i, e := range r.expenses {
		if e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return ErrExpenseNotFound
}

func (r *InMemoryExpenseRepository) All() []models.Expense { return r.expenses }

func (r *InMemoryExpenseRepository) Clear() {
	r.expenses = nil
	r.nextID = 1
}
