package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wagePresetRepository struct {
	db *database.DB
}

func NewWagePresetRepository(db *database.DB) wagepreset.WagePresetRepository {
	return &wagePresetRepository{db: db}
}

const wagePresetColumns = `
	name, valid_from, valid_to, currency, description,
	monthly_dpp_employee_no_tax_limit, monthly_dpp_employer_no_tax_limit,
	monthly_dpc_employee_no_tax_limit, monthly_dpc_employer_no_tax_limit,
	health_insurance_employee_tax_pct, social_insurance_employee_tax_pct,
	health_insurance_employer_tax_pct, social_insurance_employer_tax_pct,
	min_hourly_wage, min_monthly_hpp_salary,
	created_at, edited_at, deleted_at`

func scanWagePreset(row pgx.Row) (wagepreset.WagePreset, error) {
	var p wagepreset.WagePreset

	err := row.Scan(
		&p.Name, &p.ValidFrom, &p.ValidTo, &p.Currency, &p.Description,
		&p.MonthlyDPPEmployeeNoTaxLimit, &p.MonthlyDPPEmployerNoTaxLimit,
		&p.MonthlyDPCEmployeeNoTaxLimit, &p.MonthlyDPCEmployerNoTaxLimit,
		&p.HealthInsuranceEmployeePct, &p.SocialInsuranceEmployeePct,
		&p.HealthInsuranceEmployerPct, &p.SocialInsuranceEmployerPct,
		&p.MinHourlyWage, &p.MinMonthlyHPPSalary,
		&p.CreatedAt, &p.EditedAt, &p.DeletedAt,
	)
	if err != nil {
		return wagepreset.WagePreset{}, err
	}

	return p, nil
}

// GetByName implements wagepreset.WagePresetRepository.
func (r *wagePresetRepository) GetByName(ctx context.Context, name string) (wagepreset.WagePreset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + wagePresetColumns + `
		FROM wage_presets
		WHERE name = $1
		  AND deleted_at IS NULL
	`

	preset, err := scanWagePreset(q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wagepreset.WagePreset{}, wagepreset.ErrPresetNotFound
		}
		return wagepreset.WagePreset{}, fmt.Errorf("failed to get wage preset: %w", err)
	}

	return preset, nil
}

// GetForDate implements wagepreset.WagePresetRepository. A nil result
// with nil error means no preset covers the date.
func (r *wagePresetRepository) GetForDate(ctx context.Context, date time.Time) (*wagepreset.WagePreset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + wagePresetColumns + `
		FROM wage_presets
		WHERE valid_from <= $1
		  AND (valid_to IS NULL OR valid_to >= $1)
		  AND deleted_at IS NULL
	`

	preset, err := scanWagePreset(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wage preset for date: %w", err)
	}

	return &preset, nil
}

// ListAll implements wagepreset.WagePresetRepository.
func (r *wagePresetRepository) ListAll(ctx context.Context) ([]wagepreset.WagePreset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + wagePresetColumns + `
		FROM wage_presets
		WHERE deleted_at IS NULL
		ORDER BY valid_from
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage presets: %w", err)
	}
	defer rows.Close()

	var presets []wagepreset.WagePreset
	for rows.Next() {
		preset, err := scanWagePreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage preset: %w", err)
		}
		presets = append(presets, preset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wage presets: %w", err)
	}

	return presets, nil
}
