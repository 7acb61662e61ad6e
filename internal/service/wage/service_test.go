package wage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wage"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
)

type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubTimesheetRepo serves a fixed set of sheets. Methods the reader
// never touches are left to the embedded nil interface.
type stubTimesheetRepo struct {
	timesheet.TimesheetRepository
	sheets []timesheet.TimesheetWithWorkdays
}

func (r *stubTimesheetRepo) GetByID(_ context.Context, id string) (timesheet.Timesheet, error) {
	for _, tsw := range r.sheets {
		if tsw.Timesheet.ID == id {
			return tsw.Timesheet, nil
		}
	}
	return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
}

func (r *stubTimesheetRepo) ListWorkdays(_ context.Context, timesheetID string) ([]timesheet.Workday, error) {
	for _, tsw := range r.sheets {
		if tsw.Timesheet.ID == timesheetID {
			return append([]timesheet.Workday(nil), tsw.Workdays...), nil
		}
	}
	return nil, nil
}

func (r *stubTimesheetRepo) ListOverlapping(_ context.Context, userID, companyID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, tsw := range r.sheets {
		ts := tsw.Timesheet
		if ts.UserID != userID || ts.CompanyID != companyID {
			continue
		}
		if ts.StartDate.After(to) || ts.EndDate.Before(from) {
			continue
		}
		out = append(out, ts)
	}
	return out, nil
}

type stubPresetRepo struct {
	presets []wagepreset.WagePreset
}

func (r *stubPresetRepo) GetByName(_ context.Context, name string) (wagepreset.WagePreset, error) {
	for _, p := range r.presets {
		if p.Name == name {
			return p, nil
		}
	}
	return wagepreset.WagePreset{}, wagepreset.ErrPresetNotFound
}

func (r *stubPresetRepo) GetForDate(_ context.Context, date time.Time) (*wagepreset.WagePreset, error) {
	for i := range r.presets {
		if r.presets[i].Covers(date) {
			return &r.presets[i], nil
		}
	}
	return nil, nil
}

func (r *stubPresetRepo) ListAll(_ context.Context) ([]wagepreset.WagePreset, error) {
	return r.presets, nil
}

type stubEmploymentRepo struct {
	emp employment.Employment
}

func (r *stubEmploymentRepo) GetByUserCompany(_ context.Context, userID, companyID string) (employment.Employment, error) {
	if r.emp.UserID != userID || r.emp.CompanyID != companyID {
		return employment.Employment{}, employment.ErrEmploymentNotFound
	}
	return r.emp, nil
}

func employmentSheet(id, start, end string, hoursByDate map[string]float64) timesheet.TimesheetWithWorkdays {
	tsw := sheetWithHours(id, start, end, hoursByDate)
	tsw.Timesheet.UserID = "user-1"
	tsw.Timesheet.CompanyID = "company-1"
	return tsw
}

func newTestWageService(sheets []timesheet.TimesheetWithWorkdays, presets []wagepreset.WagePreset, emp employment.Employment) wage.WageService {
	return NewWageService(
		passthroughTxManager{},
		&stubTimesheetRepo{sheets: sheets},
		&stubPresetRepo{presets: presets},
		&stubEmploymentRepo{emp: emp},
	)
}

func dppEmployment(hourlyWage string) employment.Employment {
	return employment.Employment{
		UserID:     "user-1",
		CompanyID:  "company-1",
		HourlyWage: dec(hourlyWage),
		Type:       employment.ContractDPP,
	}
}

func TestReadOverlapping_InvertedWindowRejected(t *testing.T) {
	svc := newTestWageService(nil, nil, dppEmployment("100"))

	_, err := svc.ReadOverlapping(
		context.Background(),
		"user-1", "company-1",
		date("2024-08-31"), date("2024-08-01"),
		false,
	)
	assert.ErrorIs(t, err, timesheet.ErrInvalidDateRange)
}

func TestReadOverlapping_EmptyWindowIsNotAnError(t *testing.T) {
	svc := newTestWageService(nil, nil, dppEmployment("100"))

	got, err := svc.ReadOverlapping(
		context.Background(),
		"user-1", "company-1",
		date("2024-08-01"), date("2024-08-31"),
		false,
	)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadOverlapping_TrimsWorkdaysToWindow(t *testing.T) {
	sheets := []timesheet.TimesheetWithWorkdays{
		employmentSheet("ts-1", "2024-08-01", "2024-08-31", map[string]float64{
			"2024-08-05": 8,
			"2024-08-20": 6,
		}),
	}
	svc := newTestWageService(sheets, nil, dppEmployment("100"))

	from, to := date("2024-08-01"), date("2024-08-10")

	trimmed, err := svc.ReadOverlapping(context.Background(), "user-1", "company-1", from, to, true)
	require.NoError(t, err)
	require.Len(t, trimmed, 1)
	require.Len(t, trimmed[0].Workdays, 1)
	assert.Equal(t, date("2024-08-05"), trimmed[0].Workdays[0].Date)

	full, err := svc.ReadOverlapping(context.Background(), "user-1", "company-1", from, to, false)
	require.NoError(t, err)
	require.Len(t, full, 1)
	assert.Len(t, full[0].Workdays, 2)
}

func TestReadOverlapping_SkipsOtherEmployments(t *testing.T) {
	other := sheetWithHours("ts-other", "2024-08-01", "2024-08-10", map[string]float64{
		"2024-08-05": 8,
	})
	other.Timesheet.UserID = "user-2"
	other.Timesheet.CompanyID = "company-1"

	sheets := []timesheet.TimesheetWithWorkdays{
		employmentSheet("ts-1", "2024-08-01", "2024-08-10", map[string]float64{
			"2024-08-05": 4,
		}),
		other,
	}
	svc := newTestWageService(sheets, nil, dppEmployment("100"))

	got, err := svc.ReadOverlapping(
		context.Background(),
		"user-1", "company-1",
		date("2024-08-01"), date("2024-08-31"),
		false,
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ts-1", got[0].Timesheet.ID)
}

func TestReadExtended_ResolvesPresetPerTouchedMonth(t *testing.T) {
	preset := *testPreset()
	preset.ValidFrom = date("2024-08-01")
	validTo := date("2024-08-31")
	preset.ValidTo = &validTo

	sheets := []timesheet.TimesheetWithWorkdays{
		employmentSheet("ts-1", "2024-08-25", "2024-09-05", map[string]float64{
			"2024-08-30": 8,
			"2024-09-02": 8,
		}),
	}
	svc := newTestWageService(sheets, []wagepreset.WagePreset{preset}, dppEmployment("100"))

	bundle, err := svc.ReadExtended(
		context.Background(),
		"user-1", "company-1",
		date("2024-08-25"), date("2024-09-05"),
	)
	require.NoError(t, err)

	require.Len(t, bundle.PresetsByMonth, 2)

	august := bundle.PresetsByMonth[wage.MonthKey{Year: 2024, Month: time.August}]
	require.NotNil(t, august)
	assert.Equal(t, preset.Name, august.Name)

	// September has no covering preset: recorded as nil, not an error.
	september, ok := bundle.PresetsByMonth[wage.MonthKey{Year: 2024, Month: time.September}]
	assert.True(t, ok)
	assert.Nil(t, september)

	assert.True(t, bundle.HourlyWage.Equal(dec("100")))
	assert.Equal(t, employment.ContractDPP, bundle.ContractType)
}

func TestReadExtended_UnknownEmployment(t *testing.T) {
	svc := newTestWageService(nil, nil, dppEmployment("100"))

	_, err := svc.ReadExtended(
		context.Background(),
		"user-9", "company-9",
		date("2024-08-01"), date("2024-08-31"),
	)
	assert.ErrorIs(t, err, employment.ErrEmploymentNotFound)
}

// End to end through the reader: the target alone stays under the
// threshold, a sibling timesheet in the same month pushes it over.
func TestGetTimesheetWage_FoldsInSiblingTimesheets(t *testing.T) {
	preset := *testPreset()
	preset.MonthlyDPPEmployeeNoTaxLimit = dec("4000")
	preset.MonthlyDPPEmployerNoTaxLimit = dec("4000")

	sheets := []timesheet.TimesheetWithWorkdays{
		employmentSheet("ts-target", "2024-08-01", "2024-08-10", map[string]float64{
			"2024-08-05": 25,
		}),
		employmentSheet("ts-sibling", "2024-08-05", "2024-08-20", map[string]float64{
			"2024-08-08": 20,
		}),
	}
	svc := newTestWageService(sheets, []wagepreset.WagePreset{preset}, dppEmployment("100"))

	report, err := svc.GetTimesheetWage(context.Background(), "ts-target", false)
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("2500")))
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("112.5")))
	assert.True(t, report.TotalWage.NetWage.Equal(dec("2225")))
}

// The sibling's span is disjoint from the target's, but it sits in the
// same calendar month, so it must still count toward the no-tax
// threshold: the read window spans whole months, not the target's span.
func TestGetTimesheetWage_CountsSameMonthSheetsOutsideTargetSpan(t *testing.T) {
	preset := *testPreset()
	preset.MonthlyDPPEmployeeNoTaxLimit = dec("4000")
	preset.MonthlyDPPEmployerNoTaxLimit = dec("4000")

	sheets := []timesheet.TimesheetWithWorkdays{
		employmentSheet("ts-target", "2024-08-01", "2024-08-10", map[string]float64{
			"2024-08-05": 25,
		}),
		employmentSheet("ts-sibling", "2024-08-11", "2024-08-20", map[string]float64{
			"2024-08-15": 20,
		}),
	}
	svc := newTestWageService(sheets, []wagepreset.WagePreset{preset}, dppEmployment("100"))

	// Target 2500 alone stays under 4000; combined with the sibling's
	// 2000 the month reaches 4500 and contributions are charged.
	report, err := svc.GetTimesheetWage(context.Background(), "ts-target", false)
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("2500")))
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("112.5")))
	assert.True(t, report.TotalWage.EmployeeSocialInsurance.Equal(dec("162.5")))
	assert.True(t, report.TotalWage.NetWage.Equal(dec("2225")))
}

func TestMonthWindow(t *testing.T) {
	from, to := monthWindow(date("2024-08-07"), date("2024-09-15"))
	assert.Equal(t, date("2024-08-01"), from)
	assert.Equal(t, date("2024-09-30"), to)

	from, to = monthWindow(date("2024-12-31"), date("2024-12-31"))
	assert.Equal(t, date("2024-12-01"), from)
	assert.Equal(t, date("2024-12-31"), to)

	// February of a leap year.
	from, to = monthWindow(date("2024-02-10"), date("2024-02-10"))
	assert.Equal(t, date("2024-02-01"), from)
	assert.Equal(t, date("2024-02-29"), to)
}

func TestGetTimesheetWage_MissingPresetReportedAsData(t *testing.T) {
	sheets := []timesheet.TimesheetWithWorkdays{
		employmentSheet("ts-1", "2024-08-01", "2024-08-10", map[string]float64{
			"2024-08-05": 8,
		}),
	}
	svc := newTestWageService(sheets, nil, dppEmployment("100"))

	report, err := svc.GetTimesheetWage(context.Background(), "ts-1", false)
	require.NoError(t, err)

	assert.Equal(t, wage.ErrMsgMissingPreset, report.Err)
	assert.True(t, report.TotalWage.TaxBase.IsZero())
}

func TestGetTimesheetWage_UnknownTimesheet(t *testing.T) {
	svc := newTestWageService(nil, nil, dppEmployment("100"))

	_, err := svc.GetTimesheetWage(context.Background(), "no-such-id", false)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}
