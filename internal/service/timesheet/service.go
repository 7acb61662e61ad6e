package timesheet

import (
	"context"
	"time"

	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/database"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	txManager     database.TxManager
	timesheetRepo timesheet.TimesheetRepository
}

func NewTimesheetService(
	txManager database.TxManager,
	timesheetRepo timesheet.TimesheetRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		txManager:     txManager,
		timesheetRepo: timesheetRepo,
	}
}

// Create implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Create(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetWithWorkdays, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	start, end := req.Dates()

	// The duplicate triple is rejected up front rather than left to a
	// constraint violation inside the transaction.
	exists, err := s.timesheetRepo.ExistsForTriple(ctx, req.UserID, req.CompanyID, req.EventID)
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}
	if exists {
		return timesheet.TimesheetWithWorkdays{}, timesheet.ErrTimesheetExists
	}

	var result timesheet.TimesheetWithWorkdays
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.timesheetRepo.Create(txCtx, timesheet.Timesheet{
			StartDate:  start,
			EndDate:    end,
			TotalHours: 0,
			IsEditable: true,
			Status:     timesheet.StatusNotRequested,
			UserID:     req.UserID,
			CompanyID:  req.CompanyID,
			EventID:    req.EventID,
		})
		if err != nil {
			return err
		}

		if err := s.timesheetRepo.CreateWorkdays(txCtx, created.ID, start, end); err != nil {
			return err
		}

		workdays, err := s.timesheetRepo.ListWorkdays(txCtx, created.ID)
		if err != nil {
			return err
		}

		result = timesheet.TimesheetWithWorkdays{Timesheet: created, Workdays: workdays}
		return nil
	})
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	return result, nil
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetWithWorkdays, error) {
	ts, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	workdays, err := s.timesheetRepo.ListWorkdays(ctx, id)
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	return timesheet.TimesheetWithWorkdays{Timesheet: ts, Workdays: workdays}, nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.ListTimesheetsFilter) ([]timesheet.Timesheet, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return s.timesheetRepo.List(ctx, filter)
}

// Update implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Update(ctx context.Context, id string, req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetWithWorkdays, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	upd, patches, err := buildUpdate(req)
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		// The merge update doubles as the liveness check: a soft-deleted
		// or absent timesheet yields ErrTimesheetNotFound regardless of
		// the payload.
		if _, err := s.timesheetRepo.Update(txCtx, id, upd); err != nil {
			return err
		}

		for _, patch := range patches {
			if err := s.timesheetRepo.UpdateWorkday(txCtx, id, patch); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	// Not every field round-trips through the update call, so the
	// response is always re-read from the committed state.
	return s.Get(ctx, id)
}

func buildUpdate(req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetUpdate, []timesheet.WorkdayUpdate, error) {
	var upd timesheet.TimesheetUpdate

	if req.StartDate != nil {
		start, err := validator.ParseDate(*req.StartDate)
		if err != nil {
			return upd, nil, err
		}
		upd.StartDate = &start
	}

	if req.EndDate != nil {
		end, err := validator.ParseDate(*req.EndDate)
		if err != nil {
			return upd, nil, err
		}
		upd.EndDate = &end
	}

	upd.TotalHours = req.TotalHours
	upd.IsEditable = req.IsEditable
	upd.ManagerNote = req.ManagerNote

	if req.Status != nil {
		status, err := timesheet.ParseApprovalStatus(*req.Status)
		if err != nil {
			return upd, nil, err
		}
		upd.Status = &status
	}

	patches := make([]timesheet.WorkdayUpdate, 0, len(req.Workdays))
	for _, wd := range req.Workdays {
		date, err := validator.ParseDate(wd.Date)
		if err != nil {
			return upd, nil, err
		}
		patches = append(patches, timesheet.WorkdayUpdate{
			Date:       date,
			TotalHours: wd.TotalHours,
			Comment:    wd.Comment,
			IsEditable: wd.IsEditable,
		})
	}

	return upd, patches, nil
}

// ResetWork implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ResetWork(ctx context.Context, id string) (timesheet.TimesheetWithWorkdays, error) {
	if _, err := s.timesheetRepo.GetByID(ctx, id); err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	zero := 0.0
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.timesheetRepo.ResetWorkdays(txCtx, id); err != nil {
			return err
		}

		_, err := s.timesheetRepo.Update(txCtx, id, timesheet.TimesheetUpdate{TotalHours: &zero})
		return err
	})
	if err != nil {
		return timesheet.TimesheetWithWorkdays{}, err
	}

	return s.Get(ctx, id)
}

// ReconcileEventSpan implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ReconcileEventSpan(ctx context.Context, eventID string, newStart, newEnd time.Time) error {
	if newStart.After(newEnd) {
		return timesheet.ErrInvalidDateRange
	}

	// Every timesheet of the event realigns in one transaction: a
	// failure part way through must not leave some sheets on the new
	// span and others on the old one. Concurrent per-day edits still
	// interleave; last committed write wins.
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		sheets, err := s.timesheetRepo.ListByEvent(txCtx, eventID)
		if err != nil {
			return err
		}

		for _, ts := range sheets {
			if err := s.timesheetRepo.AdjustSpan(txCtx, ts.ID, newStart, newEnd); err != nil {
				return err
			}

			if err := s.timesheetRepo.DeleteWorkdaysOutside(txCtx, ts.ID, newStart, newEnd); err != nil {
				return err
			}

			// Existing in-range workdays are left untouched; only the
			// missing dates are filled in.
			if err := s.timesheetRepo.CreateWorkdays(txCtx, ts.ID, newStart, newEnd); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, id string) error {
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.timesheetRepo.SoftDelete(txCtx, id); err != nil {
			return err
		}

		return s.timesheetRepo.SoftDeleteWorkdays(txCtx, id)
	})
}
