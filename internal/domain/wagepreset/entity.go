package wagepreset

import (
	"time"

	"github.com/shopspring/decimal"
)

// WagePreset is a named tax and contribution configuration valid over a
// date interval; an open-ended interval has a nil ValidTo. At most one
// preset covers any calendar date, and presets are immutable once a wage
// computation has referenced them.
type WagePreset struct {
	Name        string
	ValidFrom   time.Time
	ValidTo     *time.Time
	Currency    string
	Description string

	// Monthly no-tax thresholds per contract type and side.
	MonthlyDPPEmployeeNoTaxLimit decimal.Decimal
	MonthlyDPPEmployerNoTaxLimit decimal.Decimal
	MonthlyDPCEmployeeNoTaxLimit decimal.Decimal
	MonthlyDPCEmployerNoTaxLimit decimal.Decimal

	// Insurance rates in percent.
	HealthInsuranceEmployeePct decimal.Decimal
	SocialInsuranceEmployeePct decimal.Decimal
	HealthInsuranceEmployerPct decimal.Decimal
	SocialInsuranceEmployerPct decimal.Decimal

	MinHourlyWage decimal.Decimal
	// Unused by the short-term contract types; kept for the HPP rows.
	MinMonthlyHPPSalary decimal.Decimal

	CreatedAt time.Time
	EditedAt  time.Time
	DeletedAt *time.Time
}

// Covers reports whether the preset's validity interval contains date.
func (p *WagePreset) Covers(date time.Time) bool {
	if date.Before(p.ValidFrom) {
		return false
	}
	return p.ValidTo == nil || !date.After(*p.ValidTo)
}
