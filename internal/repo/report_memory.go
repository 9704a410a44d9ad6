package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type InMemoryReportRepository struct {
	byDate map[string]models.Report
	nextID int
}

func NewInMemoryReportRepository() *InMemoryReportRepository {
	return &InMemoryReportRepository{byDate: make(map[string]models.Report), nextID: 1}
}

func (r *InMemoryReportRepository) Upsert(_ context.Context, rep models.Report) (models.Report, error) {
	if existing, ok := r.byDate[rep.ReportDate]; ok {
		rep.ID = existing.ID
	} else {
		rep.ID = r.nextID
		r.nextID++
	}
	r.byDate[rep.ReportDate] = rep
	return rep, nil
}

func (r *InMemoryReportRepository) GetByDate(_ context.Context, date string) (models.Report, error) {
	rep, ok := r.byDate[date]
	if !ok {
		return models.Report{}, ErrReportNotFound
	}
	return rep, nil
}

func (r *InMemoryReportRepository) Latest(_ context.Context) (models.Report, error) {
	var latest models.Report
	found := false
	for date, rep := range r.byDate {
		if !found || date > latest.ReportDate {
			latest = rep
			found = true
		}
	}
	if !found {
		return models.Report{}, ErrReportNotFound
	}
	return latest, nil
}

// Count reports how many rows exist; idempotence tests assert it stays flat.
func (r *InMemoryReportRepository) Count() int { return len(r.byDate) }

func (r *InMemoryReportRepository) Clear() {
	r.byDate = make(map[string]models.Report)
	r.nextID = 1
}
