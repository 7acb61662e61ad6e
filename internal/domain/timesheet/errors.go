package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrTimesheetNotFound     = errors.New("timesheet not found")
	ErrTimesheetExists       = errors.New("a timesheet for this employee, employer and event already exists")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")
	ErrEmptyUpdate           = errors.New("update request contains no fields")
	ErrInvalidApprovalStatus = errors.New("invalid approval status")
)
