package timesheet

import (
	"time"

	"github.com/eventshift/eventshift-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type CreateTimesheetRequest struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	EventID   string `json:"event_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	start, err := validator.ParseDate(r.StartDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}

	end, err := validator.ParseDate(r.EndDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) == 0 && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed span. Call Validate first.
func (r *CreateTimesheetRequest) Dates() (start, end time.Time) {
	start, _ = validator.ParseDate(r.StartDate)
	end, _ = validator.ParseDate(r.EndDate)
	return start, end
}

// WorkdayPatch is a per-day override carried inside an update request.
// Patches for dates without a matching workday are silently ignored.
type WorkdayPatch struct {
	Date       string   `json:"date"`
	TotalHours *float64 `json:"total_hours"`
	Comment    *string  `json:"comment"`
	IsEditable *bool    `json:"is_editable"`
}

// UpdateTimesheetRequest carries a partial update. Absent fields are left
// untouched; a request with every field absent is rejected.
type UpdateTimesheetRequest struct {
	StartDate   *string        `json:"start_date"`
	EndDate     *string        `json:"end_date"`
	TotalHours  *float64       `json:"total_hours"`
	IsEditable  *bool          `json:"is_editable"`
	Status      *string        `json:"status"`
	ManagerNote *string        `json:"manager_note"`
	Workdays    []WorkdayPatch `json:"workdays"`
}

func (r *UpdateTimesheetRequest) isEmpty() bool {
	return r.StartDate == nil &&
		r.EndDate == nil &&
		r.TotalHours == nil &&
		r.IsEditable == nil &&
		r.Status == nil &&
		r.ManagerNote == nil &&
		len(r.Workdays) == 0
}

func (r *UpdateTimesheetRequest) Validate() error {
	if r.isEmpty() {
		return ErrEmptyUpdate
	}

	var errs validator.ValidationErrors

	if r.StartDate != nil {
		if _, err := validator.ParseDate(*r.StartDate); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		if _, err := validator.ParseDate(*r.EndDate); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if r.TotalHours != nil && *r.TotalHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must not be negative",
		})
	}

	if r.Status != nil {
		if _, err := ParseApprovalStatus(*r.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of not_requested, pending, accepted, rejected",
			})
		}
	}

	for _, wd := range r.Workdays {
		if _, err := validator.ParseDate(wd.Date); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "workdays",
				Message: "workday date must be a valid date in YYYY-MM-DD format",
			})
			break
		}
		if wd.TotalHours != nil && *wd.TotalHours < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "workdays",
				Message: "workday total_hours must not be negative",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListTimesheetsFilter narrows and pages a timesheet listing. UserID and
// CompanyID filter a single employment when both are set.
type ListTimesheetsFilter struct {
	UserID    string
	CompanyID string
	Limit     int
	Offset    int
}

func (f *ListTimesheetsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not be negative",
		})
	}

	if f.Offset < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "offset",
			Message: "offset must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TimesheetUpdate is the repository-level merge payload: nil fields keep
// the stored value.
type TimesheetUpdate struct {
	StartDate   *time.Time
	EndDate     *time.Time
	TotalHours  *float64
	IsEditable  *bool
	Status      *ApprovalStatus
	ManagerNote *string
}

// WorkdayUpdate is the repository-level per-day merge payload.
type WorkdayUpdate struct {
	Date       time.Time
	TotalHours *float64
	Comment    *string
	IsEditable *bool
}
