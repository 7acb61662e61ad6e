package timesheet

import (
	"context"
	"time"
)

// TimesheetService defines the timesheet and workday lifecycle.
type TimesheetService interface {
	// Create materializes a timesheet for one (employee, employer, event)
	// triple with one zero-hour workday per day of the span, atomically.
	Create(ctx context.Context, req CreateTimesheetRequest) (TimesheetWithWorkdays, error)

	// Get returns the timesheet with its workdays ordered by date.
	Get(ctx context.Context, id string) (TimesheetWithWorkdays, error)

	// List returns live timesheets matching the filter.
	List(ctx context.Context, filter ListTimesheetsFilter) ([]Timesheet, error)

	// Update applies the supplied fields and per-day patches, then
	// returns the freshly re-read timesheet with workdays.
	Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetWithWorkdays, error)

	// ResetWork zeroes all workday hours and comments and the cached
	// total, atomically. Idempotent.
	ResetWork(ctx context.Context, id string) (TimesheetWithWorkdays, error)

	// ReconcileEventSpan realigns every live timesheet of the event to
	// the new span: out-of-range workdays are dropped, missing in-range
	// days are created, surviving days keep their hours. Idempotent.
	ReconcileEventSpan(ctx context.Context, eventID string, newStart, newEnd time.Time) error

	// Delete soft-deletes the timesheet and its workdays.
	Delete(ctx context.Context, id string) error
}
