package wage

import (
	"context"
	"errors"
	"time"

	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
)

// ErrTargetNotFound means the timesheet the wage was requested for did
// not come back in the assembled bundle. Unlike the Err field of the
// report this is a hard failure, not a displayable outcome.
var ErrTargetNotFound = errors.New("target timesheet not present in bundle")

// Computation failures carried as data in TimesheetWage.Err.
const (
	ErrMsgMissingPreset       = "some workday month has no wage preset"
	ErrMsgBelowMinimumWage    = "the hourly wage of a DPP agreement is below the required minimum"
	ErrMsgUnsupportedContract = "hpp employment is not supported by wage computation"
)

// WageService assembles cross-timesheet data and computes wage reports.
type WageService interface {
	// ReadOverlapping returns every live timesheet of the employment
	// whose span intersects [from, to], each with its workdays. With
	// trimToWindow set, only workdays inside the window are included.
	// An empty result is a valid answer, not an error.
	ReadOverlapping(ctx context.Context, userID, companyID string, from, to time.Time, trimToWindow bool) ([]timesheet.TimesheetWithWorkdays, error)

	// ReadExtended is ReadOverlapping (trimmed) plus one wage preset per
	// touched calendar month and the employment terms, all read in one
	// transaction for a consistent snapshot. Months without a covering
	// preset are recorded with a nil entry instead of failing.
	ReadExtended(ctx context.Context, userID, companyID string, from, to time.Time) (TimesheetBundle, error)

	// GetTimesheetWage computes the wage report for one target
	// timesheet, folding in every other timesheet of the same
	// employment that shares a calendar month with it.
	GetTimesheetWage(ctx context.Context, timesheetID string, tradeLicenseSigned bool) (TimesheetWage, error)
}
