package report

import (
	"time"

	"github.com/salespilot/backoffice/internal/models"
)

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start string
	End   string
}

// ParseRange validates a caller-supplied range.
func ParseRange(start, end string) (DateRange, error) {
	s, err := time.Parse(models.DateOnly, start)
	if err != nil {
		return DateRange{}, &ValidationError{Field: "start_date", Reason: "must be YYYY-MM-DD"}
	}
	e, err := time.Parse(models.DateOnly, end)
	if err != nil {
		return DateRange{}, &ValidationError{Field: "end_date", Reason: "must be YYYY-MM-DD"}
	}
	if e.Before(s) {
		return DateRange{}, &ValidationError{Field: "date_range", Reason: "end date precedes start date"}
	}
	return DateRange{Start: start, End: end}, nil
}

// ResolveRange maps a dashboard preset onto the current week, month or year.
// Unknown presets fall back to yearly, matching the original dashboard.
func ResolveRange(preset string, now time.Time) DateRange {
	switch preset {
	case "weekly":
		// Monday through Sunday of the current week.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := now.AddDate(0, 0, 1-weekday)
		return DateRange{
			Start: monday.Format(models.DateOnly),
			End:   monday.AddDate(0, 0, 6).Format(models.DateOnly),
		}
	case "monthly":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{
			Start: first.Format(models.DateOnly),
			End:   first.AddDate(0, 1, -1).Format(models.DateOnly),
		}
	default: // yearly
		return DateRange{
			Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(models.DateOnly),
			End:   time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location()).Format(models.DateOnly),
		}
	}
}
