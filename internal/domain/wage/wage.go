package wage

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
)

// MonthKey identifies one calendar month. It is the aggregation key used
// to fold workdays across timesheets of the same employment, because the
// insurance no-tax limits apply per employee per employer per month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthKeyOf(date time.Time) MonthKey {
	return MonthKey{Year: date.Year(), Month: date.Month()}
}

// FirstDay returns the first calendar day of the month, the date used for
// preset lookups.
func (k MonthKey) FirstDay() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// DetailedWage is a computed wage breakdown. All fields are additive, so
// per-month values sum into a total.
type DetailedWage struct {
	WorkedHours float64 `json:"worked_hours"`

	TaxBase decimal.Decimal `json:"tax_base"`
	NetWage decimal.Decimal `json:"net_wage"`

	EmployeeHealthInsurance decimal.Decimal `json:"employee_health_insurance"`
	EmployeeSocialInsurance decimal.Decimal `json:"employee_social_insurance"`
	EmployerHealthInsurance decimal.Decimal `json:"employer_health_insurance"`
	EmployerSocialInsurance decimal.Decimal `json:"employer_social_insurance"`
}

// Add folds another breakdown into this one.
func (w *DetailedWage) Add(other DetailedWage) {
	w.WorkedHours += other.WorkedHours
	w.TaxBase = w.TaxBase.Add(other.TaxBase)
	w.NetWage = w.NetWage.Add(other.NetWage)
	w.EmployeeHealthInsurance = w.EmployeeHealthInsurance.Add(other.EmployeeHealthInsurance)
	w.EmployeeSocialInsurance = w.EmployeeSocialInsurance.Add(other.EmployeeSocialInsurance)
	w.EmployerHealthInsurance = w.EmployerHealthInsurance.Add(other.EmployerHealthInsurance)
	w.EmployerSocialInsurance = w.EmployerSocialInsurance.Add(other.EmployerSocialInsurance)
}

// TimesheetWage is the wage report for one target timesheet. Err carries
// domain computation failures as data; an empty Err means the breakdown
// is complete and valid.
type TimesheetWage struct {
	TotalWage    DetailedWage              `json:"total_wage"`
	Currency     string                    `json:"currency"`
	HourlyWage   decimal.Decimal           `json:"hourly_wage"`
	MonthlyWages map[MonthKey]DetailedWage `json:"-"`
	Err          string                    `json:"error,omitempty"`
}

// NewTimesheetWage returns an empty report with zeroed decimals so JSON
// output never carries uninitialized values.
func NewTimesheetWage() TimesheetWage {
	return TimesheetWage{
		TotalWage:    zeroDetailedWage(),
		HourlyWage:   decimal.Zero,
		MonthlyWages: make(map[MonthKey]DetailedWage),
	}
}

func zeroDetailedWage() DetailedWage {
	return DetailedWage{
		TaxBase:                 decimal.Zero,
		NetWage:                 decimal.Zero,
		EmployeeHealthInsurance: decimal.Zero,
		EmployeeSocialInsurance: decimal.Zero,
		EmployerHealthInsurance: decimal.Zero,
		EmployerSocialInsurance: decimal.Zero,
	}
}

// TimesheetBundle is the consistent snapshot assembled by the
// cross-timesheet reader: every timesheet of the employment overlapping
// the queried window, one preset per touched month (nil when no preset
// covers that month), and the employment terms.
type TimesheetBundle struct {
	Timesheets     []timesheet.TimesheetWithWorkdays
	PresetsByMonth map[MonthKey]*wagepreset.WagePreset
	HourlyWage     decimal.Decimal
	ContractType   employment.ContractType
}
