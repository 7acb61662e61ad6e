package wage

import (
	"github.com/shopspring/decimal"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wage"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
)

// The currency is fixed for now.
const wageCurrency = "CZK"

var hundred = decimal.NewFromInt(100)

// monthBucket aggregates one timesheet's workdays falling into a single
// calendar month.
type monthBucket struct {
	totalHours float64
	taxBase    decimal.Decimal
}

type classifiedTimesheet struct {
	sheet   timesheet.Timesheet
	buckets map[wage.MonthKey]monthBucket
}

// classifyWorkdays divides a timesheet's workdays into per-month buckets
// and computes each bucket's hours and tax base (hours times hourly wage,
// no rounding).
func classifyWorkdays(workdays []timesheet.Workday, hourlyWage decimal.Decimal) map[wage.MonthKey]monthBucket {
	buckets := make(map[wage.MonthKey]monthBucket)

	for _, wd := range workdays {
		key := wage.MonthKeyOf(wd.Date)
		bucket := buckets[key]
		bucket.totalHours += wd.TotalHours
		buckets[key] = bucket
	}

	for key, bucket := range buckets {
		bucket.taxBase = decimal.NewFromFloat(bucket.totalHours).Mul(hourlyWage)
		buckets[key] = bucket
	}

	return buckets
}

// relatedTaxBase sums the month's tax base across the related timesheets.
func relatedTaxBase(related []classifiedTimesheet, key wage.MonthKey) decimal.Decimal {
	total := decimal.Zero
	for _, ct := range related {
		if bucket, ok := ct.buckets[key]; ok {
			total = total.Add(bucket.taxBase)
		}
	}
	return total
}

// noTaxLimits picks the monthly thresholds for the contract type. Only
// the short-term types reach this point.
func noTaxLimits(contractType employment.ContractType, preset *wagepreset.WagePreset) (employeeLimit, employerLimit decimal.Decimal) {
	if contractType == employment.ContractDPC {
		return preset.MonthlyDPCEmployeeNoTaxLimit, preset.MonthlyDPCEmployerNoTaxLimit
	}
	return preset.MonthlyDPPEmployeeNoTaxLimit, preset.MonthlyDPPEmployerNoTaxLimit
}

// computeMonthlyWage produces one month's breakdown for the target
// timesheet. The no-tax threshold is tested against the combined monthly
// tax base of the whole employment, but the contributions themselves are
// charged on the target timesheet's own share.
func computeMonthlyWage(
	tradeLicenseSigned bool,
	bucket monthBucket,
	preset *wagepreset.WagePreset,
	employeeLimit, employerLimit decimal.Decimal,
	related decimal.Decimal,
) wage.DetailedWage {
	monthlyTotalTaxBase := bucket.taxBase.Add(related)

	monthly := wage.DetailedWage{
		WorkedHours:             bucket.totalHours,
		TaxBase:                 bucket.taxBase,
		NetWage:                 decimal.Zero,
		EmployeeHealthInsurance: decimal.Zero,
		EmployeeSocialInsurance: decimal.Zero,
		EmployerHealthInsurance: decimal.Zero,
		EmployerSocialInsurance: decimal.Zero,
	}

	if monthlyTotalTaxBase.GreaterThanOrEqual(employeeLimit) {
		monthly.EmployeeHealthInsurance = bucket.taxBase.Mul(preset.HealthInsuranceEmployeePct).Div(hundred)
		monthly.EmployeeSocialInsurance = bucket.taxBase.Mul(preset.SocialInsuranceEmployeePct).Div(hundred)
	}

	if monthlyTotalTaxBase.GreaterThanOrEqual(employerLimit) {
		monthly.EmployerHealthInsurance = bucket.taxBase.Mul(preset.HealthInsuranceEmployerPct).Div(hundred)
		monthly.EmployerSocialInsurance = bucket.taxBase.Mul(preset.SocialInsuranceEmployerPct).Div(hundred)
	}

	monthly.NetWage = monthly.TaxBase
	if !tradeLicenseSigned {
		// Employer-side contributions are reported but never subtracted.
		monthly.NetWage = monthly.NetWage.
			Sub(monthly.EmployeeHealthInsurance).
			Sub(monthly.EmployeeSocialInsurance)
	}

	return monthly
}

// computeShortTermWage walks every month of the target timesheet and
// builds the per-month and total breakdown. Any gate violation aborts
// the whole computation; no partial report is produced.
func computeShortTermWage(
	tradeLicenseSigned bool,
	target classifiedTimesheet,
	presetsByMonth map[wage.MonthKey]*wagepreset.WagePreset,
	hourlyWage decimal.Decimal,
	contractType employment.ContractType,
	related []classifiedTimesheet,
) (wage.TimesheetWage, string) {
	report := wage.NewTimesheetWage()

	for key, bucket := range target.buckets {
		preset := presetsByMonth[key]

		if contractType == employment.ContractDPP && hourlyWage.LessThan(preset.MinHourlyWage) {
			return wage.NewTimesheetWage(), wage.ErrMsgBelowMinimumWage
		}

		employeeLimit, employerLimit := noTaxLimits(contractType, preset)

		monthly := computeMonthlyWage(
			tradeLicenseSigned,
			bucket,
			preset,
			employeeLimit,
			employerLimit,
			relatedTaxBase(related, key),
		)

		report.TotalWage.Add(monthly)
		report.MonthlyWages[key] = monthly
	}

	return report, ""
}

// Calculate turns the assembled bundle into a wage report for the target
// timesheet. Domain computation failures come back in the report's Err
// field; only a target missing from the bundle is a hard error.
//
// The algorithm is two-pass: workdays are first classified into
// per-month buckets per timesheet, and only then are the thresholds
// tested against the combined monthly totals of the employment.
func Calculate(tradeLicenseSigned bool, bundle wage.TimesheetBundle, targetID string) (wage.TimesheetWage, error) {
	report := wage.NewTimesheetWage()

	// A single uncovered month invalidates the whole computation;
	// partial results are never produced.
	for _, preset := range bundle.PresetsByMonth {
		if preset == nil {
			report.Err = wage.ErrMsgMissingPreset
			return report, nil
		}
	}

	var target *classifiedTimesheet
	var related []classifiedTimesheet

	for _, tsw := range bundle.Timesheets {
		ct := classifiedTimesheet{
			sheet:   tsw.Timesheet,
			buckets: classifyWorkdays(tsw.Workdays, bundle.HourlyWage),
		}

		if tsw.Timesheet.ID == targetID {
			target = &ct
		} else {
			related = append(related, ct)
		}
	}

	if target == nil {
		return wage.TimesheetWage{}, wage.ErrTargetNotFound
	}

	switch bundle.ContractType {
	case employment.ContractDPP, employment.ContractDPC:
		var errMsg string
		report, errMsg = computeShortTermWage(
			tradeLicenseSigned,
			*target,
			bundle.PresetsByMonth,
			bundle.HourlyWage,
			bundle.ContractType,
			related,
		)
		report.Err = errMsg
	default:
		report.Err = wage.ErrMsgUnsupportedContract
	}

	report.Currency = wageCurrency
	report.HourlyWage = bundle.HourlyWage

	return report, nil
}
