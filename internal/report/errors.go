package report

import "fmt"

// ValidationError rejects malformed input before any query runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError surfaces an upsert race that persisted past one retry.
type ConflictError struct {
	ReportDate string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("report upsert conflict for %s", e.ReportDate)
}
