package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access for timesheets and their
// workdays. Multi-statement operations are composed by the service inside
// a single transaction via database.TxManager.
type TimesheetRepository interface {
	// Create inserts the timesheet row only; workdays are created
	// separately so both run in one transaction.
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)

	// CreateWorkdays inserts one zero-hour editable workday per calendar
	// day in [start, end] inclusive. Existing (timesheet, date) rows are
	// left untouched.
	CreateWorkdays(ctx context.Context, timesheetID string, start, end time.Time) error

	// GetByID retrieves a live timesheet joined with its event display
	// data. Returns ErrTimesheetNotFound for absent or soft-deleted rows.
	GetByID(ctx context.Context, id string) (Timesheet, error)

	// ListWorkdays returns the timesheet's workdays ordered by date.
	ListWorkdays(ctx context.Context, timesheetID string) ([]Workday, error)

	// List returns live timesheets newest-first, filtered and paged.
	List(ctx context.Context, filter ListTimesheetsFilter) ([]Timesheet, error)

	// ListOverlapping returns every live timesheet of the employment whose
	// span intersects [from, to].
	ListOverlapping(ctx context.Context, userID, companyID string, from, to time.Time) ([]Timesheet, error)

	// ListByEvent returns every live timesheet referencing the event.
	ListByEvent(ctx context.Context, eventID string) ([]Timesheet, error)

	// ExistsForTriple reports whether a live timesheet already exists for
	// the (user, company, event) triple.
	ExistsForTriple(ctx context.Context, userID, companyID, eventID string) (bool, error)

	// Update merges the supplied fields into a live timesheet row and
	// returns the updated row. Returns ErrTimesheetNotFound when the row
	// is absent or soft-deleted.
	Update(ctx context.Context, id string, upd TimesheetUpdate) (Timesheet, error)

	// UpdateWorkday merges the patch into the matching (timesheet, date)
	// workday. A patch for a date with no workday is a silent no-op.
	UpdateWorkday(ctx context.Context, timesheetID string, patch WorkdayUpdate) error

	// ResetWorkdays zeroes hours and clears comments on every workday of
	// the timesheet.
	ResetWorkdays(ctx context.Context, timesheetID string) error

	// AdjustSpan rewrites the timesheet's date span.
	AdjustSpan(ctx context.Context, id string, start, end time.Time) error

	// DeleteWorkdaysOutside removes workdays dated before start or after
	// end.
	DeleteWorkdaysOutside(ctx context.Context, timesheetID string, start, end time.Time) error

	// SoftDelete marks the timesheet deleted. Returns
	// ErrTimesheetNotFound when already deleted or absent.
	SoftDelete(ctx context.Context, id string) error

	// SoftDeleteWorkdays marks every workday of the timesheet deleted.
	SoftDeleteWorkdays(ctx context.Context, timesheetID string) error
}
