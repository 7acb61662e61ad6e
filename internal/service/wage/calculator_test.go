package wage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wage"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testPreset uses a low employee threshold so small tax bases are charged
// unless a test overrides the limits.
func testPreset() *wagepreset.WagePreset {
	return &wagepreset.WagePreset{
		Name:      "test-2024",
		ValidFrom: date("2024-01-01"),
		Currency:  "CZK",

		MonthlyDPPEmployeeNoTaxLimit: dec("2000"),
		MonthlyDPPEmployerNoTaxLimit: dec("2000"),
		MonthlyDPCEmployeeNoTaxLimit: dec("1000"),
		MonthlyDPCEmployerNoTaxLimit: dec("1000"),

		HealthInsuranceEmployeePct: dec("4.5"),
		SocialInsuranceEmployeePct: dec("6.5"),
		HealthInsuranceEmployerPct: dec("9"),
		SocialInsuranceEmployerPct: dec("24.8"),

		MinHourlyWage:       dec("50"),
		MinMonthlyHPPSalary: dec("17300"),
	}
}

func sheetWithHours(id string, start, end string, hoursByDate map[string]float64) timesheet.TimesheetWithWorkdays {
	ts := timesheet.Timesheet{
		ID:        id,
		StartDate: date(start),
		EndDate:   date(end),
		Status:    timesheet.StatusNotRequested,
	}

	var workdays []timesheet.Workday
	for ds, hours := range hoursByDate {
		workdays = append(workdays, timesheet.Workday{
			TimesheetID: id,
			Date:        date(ds),
			TotalHours:  hours,
		})
	}

	return timesheet.TimesheetWithWorkdays{Timesheet: ts, Workdays: workdays}
}

func singleSheetBundle(contractType employment.ContractType, hourlyWage string, preset *wagepreset.WagePreset) wage.TimesheetBundle {
	return wage.TimesheetBundle{
		Timesheets: []timesheet.TimesheetWithWorkdays{
			sheetWithHours("ts-1", "2024-08-01", "2024-08-10", map[string]float64{
				"2024-08-05": 20,
				"2024-08-06": 10,
			}),
		},
		PresetsByMonth: map[wage.MonthKey]*wagepreset.WagePreset{
			{Year: 2024, Month: time.August}: preset,
		},
		HourlyWage:   dec(hourlyWage),
		ContractType: contractType,
	}
}

// 30 hours at 100/h with both thresholds crossed:
// net = 3000 - (3000*0.045 + 3000*0.065) = 2670.
func TestCalculate_SingleMonthDeductions(t *testing.T) {
	bundle := singleSheetBundle(employment.ContractDPP, "100", testPreset())

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.Equal(t, "CZK", report.Currency)
	assert.True(t, report.HourlyWage.Equal(dec("100")))
	assert.Equal(t, 30.0, report.TotalWage.WorkedHours)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("3000")), "tax base: %s", report.TotalWage.TaxBase)
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("135")))
	assert.True(t, report.TotalWage.EmployeeSocialInsurance.Equal(dec("195")))
	assert.True(t, report.TotalWage.EmployerHealthInsurance.Equal(dec("270")))
	assert.True(t, report.TotalWage.EmployerSocialInsurance.Equal(dec("744")))
	assert.True(t, report.TotalWage.NetWage.Equal(dec("2670")), "net wage: %s", report.TotalWage.NetWage)

	monthly, ok := report.MonthlyWages[wage.MonthKey{Year: 2024, Month: time.August}]
	require.True(t, ok)
	assert.True(t, monthly.NetWage.Equal(dec("2670")))
}

func TestCalculate_BelowThresholdNoDeductions(t *testing.T) {
	preset := testPreset()
	preset.MonthlyDPPEmployeeNoTaxLimit = dec("10000")
	preset.MonthlyDPPEmployerNoTaxLimit = dec("10000")

	bundle := singleSheetBundle(employment.ContractDPP, "100", preset)

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.IsZero())
	assert.True(t, report.TotalWage.EmployeeSocialInsurance.IsZero())
	assert.True(t, report.TotalWage.EmployerHealthInsurance.IsZero())
	assert.True(t, report.TotalWage.EmployerSocialInsurance.IsZero())
	assert.True(t, report.TotalWage.NetWage.Equal(dec("3000")))
}

// Neither timesheet alone reaches the threshold, but their combined
// monthly total does, so the target's share is charged anyway.
func TestCalculate_CombinedMonthlyTotalCrossesThreshold(t *testing.T) {
	preset := testPreset()
	preset.MonthlyDPPEmployeeNoTaxLimit = dec("4000")
	preset.MonthlyDPPEmployerNoTaxLimit = dec("4000")

	bundle := wage.TimesheetBundle{
		Timesheets: []timesheet.TimesheetWithWorkdays{
			sheetWithHours("ts-target", "2024-08-01", "2024-08-10", map[string]float64{
				"2024-08-05": 25,
			}),
			sheetWithHours("ts-related", "2024-08-11", "2024-08-20", map[string]float64{
				"2024-08-15": 20,
			}),
		},
		PresetsByMonth: map[wage.MonthKey]*wagepreset.WagePreset{
			{Year: 2024, Month: time.August}: preset,
		},
		HourlyWage:   dec("100"),
		ContractType: employment.ContractDPP,
	}

	// Target 2500, related 2000, combined 4500 >= 4000: charged on 2500.
	report, err := Calculate(false, bundle, "ts-target")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("2500")))
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("112.5")))
	assert.True(t, report.TotalWage.EmployeeSocialInsurance.Equal(dec("162.5")))
	assert.True(t, report.TotalWage.NetWage.Equal(dec("2225")))

	// The related sheet as target is charged on its own 2000 share.
	report, err = Calculate(false, bundle, "ts-related")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("2000")))
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("90")))
	assert.True(t, report.TotalWage.EmployeeSocialInsurance.Equal(dec("130")))
}

// Workdays of other events never inflate the target's own contribution
// base, only the threshold test.
func TestCalculate_RelatedSheetsOutsideTargetMonthIgnored(t *testing.T) {
	preset := testPreset()

	bundle := wage.TimesheetBundle{
		Timesheets: []timesheet.TimesheetWithWorkdays{
			sheetWithHours("ts-target", "2024-08-01", "2024-08-10", map[string]float64{
				"2024-08-05": 30,
			}),
			sheetWithHours("ts-related", "2024-09-01", "2024-09-10", map[string]float64{
				"2024-09-05": 40,
			}),
		},
		PresetsByMonth: map[wage.MonthKey]*wagepreset.WagePreset{
			{Year: 2024, Month: time.August}:    preset,
			{Year: 2024, Month: time.September}: preset,
		},
		HourlyWage:   dec("100"),
		ContractType: employment.ContractDPP,
	}

	report, err := Calculate(false, bundle, "ts-target")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.Len(t, report.MonthlyWages, 1)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("3000")))
}

func TestCalculate_MultiMonthTarget(t *testing.T) {
	preset := testPreset()

	bundle := wage.TimesheetBundle{
		Timesheets: []timesheet.TimesheetWithWorkdays{
			sheetWithHours("ts-1", "2024-08-25", "2024-09-05", map[string]float64{
				"2024-08-30": 30,
				"2024-09-02": 10,
			}),
		},
		PresetsByMonth: map[wage.MonthKey]*wagepreset.WagePreset{
			{Year: 2024, Month: time.August}:    preset,
			{Year: 2024, Month: time.September}: preset,
		},
		HourlyWage:   dec("100"),
		ContractType: employment.ContractDPP,
	}

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	require.Len(t, report.MonthlyWages, 2)

	august := report.MonthlyWages[wage.MonthKey{Year: 2024, Month: time.August}]
	september := report.MonthlyWages[wage.MonthKey{Year: 2024, Month: time.September}]

	assert.True(t, august.TaxBase.Equal(dec("3000")))
	// September's 1000 stays under the 2000 threshold on its own.
	assert.True(t, september.TaxBase.Equal(dec("1000")))
	assert.True(t, september.EmployeeHealthInsurance.IsZero())

	assert.Equal(t, 40.0, report.TotalWage.WorkedHours)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("4000")))
	assert.True(t, report.TotalWage.NetWage.Equal(august.NetWage.Add(september.NetWage)))
}

// A DPP hourly wage of 90 against a 118.3 minimum yields an error report
// with no numeric breakdown.
func TestCalculate_DPPBelowMinimumHourlyWage(t *testing.T) {
	preset := testPreset()
	preset.MinHourlyWage = dec("118.3")

	bundle := singleSheetBundle(employment.ContractDPP, "90", preset)

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Equal(t, wage.ErrMsgBelowMinimumWage, report.Err)
	assert.True(t, report.TotalWage.TaxBase.IsZero())
	assert.True(t, report.TotalWage.NetWage.IsZero())
	assert.Empty(t, report.MonthlyWages)
	assert.Equal(t, "CZK", report.Currency)
	assert.True(t, report.HourlyWage.Equal(dec("90")))
}

// DPC has no minimum hourly wage gate.
func TestCalculate_DPCIgnoresMinimumHourlyWage(t *testing.T) {
	preset := testPreset()
	preset.MinHourlyWage = dec("118.3")

	bundle := singleSheetBundle(employment.ContractDPC, "90", preset)

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	assert.True(t, report.TotalWage.TaxBase.Equal(dec("2700")))
	// DPC thresholds apply: 2700 >= 1000, so deductions are charged.
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("121.5")))
}

func TestCalculate_HPPUnsupported(t *testing.T) {
	bundle := singleSheetBundle(employment.ContractHPP, "200", testPreset())

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Equal(t, wage.ErrMsgUnsupportedContract, report.Err)
	assert.True(t, report.TotalWage.TaxBase.IsZero())
	assert.Equal(t, "CZK", report.Currency)
}

func TestCalculate_MissingPresetAbortsWholeReport(t *testing.T) {
	bundle := singleSheetBundle(employment.ContractDPP, "100", testPreset())
	bundle.PresetsByMonth[wage.MonthKey{Year: 2024, Month: time.September}] = nil

	report, err := Calculate(false, bundle, "ts-1")
	require.NoError(t, err)

	assert.Equal(t, wage.ErrMsgMissingPreset, report.Err)
	assert.True(t, report.TotalWage.TaxBase.IsZero())
	assert.Empty(t, report.MonthlyWages)
}

func TestCalculate_TradeLicenseExemption(t *testing.T) {
	bundle := singleSheetBundle(employment.ContractDPP, "100", testPreset())

	report, err := Calculate(true, bundle, "ts-1")
	require.NoError(t, err)

	assert.Empty(t, report.Err)
	// Contributions are still computed and reported...
	assert.True(t, report.TotalWage.EmployeeHealthInsurance.Equal(dec("135")))
	assert.True(t, report.TotalWage.EmployerSocialInsurance.Equal(dec("744")))
	// ...but nothing is subtracted from the net wage.
	assert.True(t, report.TotalWage.NetWage.Equal(dec("3000")))
}

func TestCalculate_TargetMissingIsHardError(t *testing.T) {
	bundle := singleSheetBundle(employment.ContractDPP, "100", testPreset())

	_, err := Calculate(false, bundle, "no-such-id")
	assert.ErrorIs(t, err, wage.ErrTargetNotFound)
}

func TestCalculate_Deterministic(t *testing.T) {
	preset := testPreset()

	bundle := wage.TimesheetBundle{
		Timesheets: []timesheet.TimesheetWithWorkdays{
			sheetWithHours("ts-a", "2024-08-01", "2024-09-30", map[string]float64{
				"2024-08-01": 7.5,
				"2024-08-15": 8,
				"2024-09-01": 6.25,
			}),
			sheetWithHours("ts-b", "2024-08-10", "2024-08-20", map[string]float64{
				"2024-08-12": 4,
			}),
		},
		PresetsByMonth: map[wage.MonthKey]*wagepreset.WagePreset{
			{Year: 2024, Month: time.August}:    preset,
			{Year: 2024, Month: time.September}: preset,
		},
		HourlyWage:   dec("123.45"),
		ContractType: employment.ContractDPC,
	}

	first, err := Calculate(false, bundle, "ts-a")
	require.NoError(t, err)
	second, err := Calculate(false, bundle, "ts-a")
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
	assert.Equal(t, first.TotalWage.NetWage.String(), second.TotalWage.NetWage.String())
}
