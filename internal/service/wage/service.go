package wage

import (
	"context"
	"time"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wage"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/database"
)

type WageServiceImpl struct {
	txManager      database.TxManager
	timesheetRepo  timesheet.TimesheetRepository
	presetRepo     wagepreset.WagePresetRepository
	employmentRepo employment.EmploymentRepository
}

func NewWageService(
	txManager database.TxManager,
	timesheetRepo timesheet.TimesheetRepository,
	presetRepo wagepreset.WagePresetRepository,
	employmentRepo employment.EmploymentRepository,
) wage.WageService {
	return &WageServiceImpl{
		txManager:      txManager,
		timesheetRepo:  timesheetRepo,
		presetRepo:     presetRepo,
		employmentRepo: employmentRepo,
	}
}

// ReadOverlapping implements wage.WageService.
func (s *WageServiceImpl) ReadOverlapping(ctx context.Context, userID, companyID string, from, to time.Time, trimToWindow bool) ([]timesheet.TimesheetWithWorkdays, error) {
	if from.After(to) {
		return nil, timesheet.ErrInvalidDateRange
	}

	sheets, err := s.timesheetRepo.ListOverlapping(ctx, userID, companyID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]timesheet.TimesheetWithWorkdays, 0, len(sheets))
	for _, ts := range sheets {
		workdays, err := s.timesheetRepo.ListWorkdays(ctx, ts.ID)
		if err != nil {
			return nil, err
		}

		if trimToWindow {
			workdays = trimWorkdays(workdays, from, to)
		}

		result = append(result, timesheet.TimesheetWithWorkdays{Timesheet: ts, Workdays: workdays})
	}

	return result, nil
}

func trimWorkdays(workdays []timesheet.Workday, from, to time.Time) []timesheet.Workday {
	trimmed := make([]timesheet.Workday, 0, len(workdays))
	for _, wd := range workdays {
		if wd.Date.Before(from) || wd.Date.After(to) {
			continue
		}
		trimmed = append(trimmed, wd)
	}
	return trimmed
}

// ReadExtended implements wage.WageService. Everything runs inside one
// read transaction so the sheets, presets and employment form a
// consistent snapshot.
func (s *WageServiceImpl) ReadExtended(ctx context.Context, userID, companyID string, from, to time.Time) (wage.TimesheetBundle, error) {
	if from.After(to) {
		return wage.TimesheetBundle{}, timesheet.ErrInvalidDateRange
	}

	var bundle wage.TimesheetBundle
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		sheets, err := s.ReadOverlapping(txCtx, userID, companyID, from, to, true)
		if err != nil {
			return err
		}

		presetsByMonth := make(map[wage.MonthKey]*wagepreset.WagePreset)
		for _, tsw := range sheets {
			for _, wd := range tsw.Workdays {
				key := wage.MonthKeyOf(wd.Date)
				if _, resolved := presetsByMonth[key]; resolved {
					continue
				}

				// Presets are valid for whole months, so the lookup uses
				// the 1st. A month with no covering preset is recorded
				// as nil so the caller can report it precisely.
				preset, err := s.presetRepo.GetForDate(txCtx, key.FirstDay())
				if err != nil {
					return err
				}
				presetsByMonth[key] = preset
			}
		}

		emp, err := s.employmentRepo.GetByUserCompany(txCtx, userID, companyID)
		if err != nil {
			return err
		}

		bundle = wage.TimesheetBundle{
			Timesheets:     sheets,
			PresetsByMonth: presetsByMonth,
			HourlyWage:     emp.HourlyWage,
			ContractType:   emp.Type,
		}
		return nil
	})
	if err != nil {
		return wage.TimesheetBundle{}, err
	}

	return bundle, nil
}

// monthWindow widens a span to whole calendar months. Day 0 of the
// following month normalizes to the last day of end's month.
func monthWindow(start, end time.Time) (from, to time.Time) {
	from = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(end.Year(), end.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return from, to
}

// GetTimesheetWage implements wage.WageService.
func (s *WageServiceImpl) GetTimesheetWage(ctx context.Context, timesheetID string, tradeLicenseSigned bool) (wage.TimesheetWage, error) {
	ts, err := s.timesheetRepo.GetByID(ctx, timesheetID)
	if err != nil {
		return wage.TimesheetWage{}, err
	}

	// The no-tax thresholds apply to the employment's combined monthly
	// totals, so the queried window covers every calendar month the
	// target touches, not just the target's own span. A sibling
	// timesheet elsewhere in the same month still counts toward the
	// threshold.
	from, to := monthWindow(ts.StartDate, ts.EndDate)

	bundle, err := s.ReadExtended(ctx, ts.UserID, ts.CompanyID, from, to)
	if err != nil {
		return wage.TimesheetWage{}, err
	}

	return Calculate(tradeLicenseSigned, bundle, timesheetID)
}
