package timesheet

import (
	"time"
)

// ApprovalStatus is the closed set of states a timesheet's approval can be in.
// Transitions are driven by the calling workflow; the store only persists
// whatever status it is handed and never invents one.
type ApprovalStatus string

const (
	StatusNotRequested ApprovalStatus = "not_requested"
	StatusPending      ApprovalStatus = "pending"
	StatusAccepted     ApprovalStatus = "accepted"
	StatusRejected     ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusNotRequested, StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ParseApprovalStatus converts the wire representation into an
// ApprovalStatus, rejecting anything outside the closed set.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if !status.Valid() {
		return "", ErrInvalidApprovalStatus
	}
	return status, nil
}

// Timesheet is one employee's attendance record for one event at one
// employer, spanning [StartDate, EndDate] inclusive. The span is owned by
// the event's date range and kept equal to it.
type Timesheet struct {
	ID          string
	StartDate   time.Time
	EndDate     time.Time
	TotalHours  float64
	IsEditable  bool
	Status      ApprovalStatus
	ManagerNote *string
	UserID      string
	CompanyID   string
	EventID     string
	CreatedAt   time.Time
	EditedAt    time.Time
	DeletedAt   *time.Time

	// Event display data joined on reads.
	EventName      string
	EventAvatarURL string
}

// Workday is one calendar day's recorded hours within a timesheet.
// At most one workday exists per (timesheet, date).
type Workday struct {
	TimesheetID string
	Date        time.Time
	TotalHours  float64
	Comment     *string
	IsEditable  bool
	CreatedAt   time.Time
	EditedAt    time.Time
}

type TimesheetWithWorkdays struct {
	Timesheet Timesheet
	Workdays  []Workday
}
