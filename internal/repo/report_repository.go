package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type ReportRepository interface {
	// Upsert inserts or overwrites the report row for report_date in one
	// atomic statement. report_date itself is immutable. A retryable race
	// surfaces as ErrUpsertConflict.
	Upsert(ctx context.Context, report models.Report) (models.Report, error)
	GetByDate(ctx context.Context, date string) (models.Report, error)
	// Latest returns the most recent report by report_date.
	Latest(ctx context.Context) (models.Report, error)
}
