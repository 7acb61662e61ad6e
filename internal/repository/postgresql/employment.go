package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employmentRepository struct {
	db *database.DB
}

func NewEmploymentRepository(db *database.DB) employment.EmploymentRepository {
	return &employmentRepository{db: db}
}

// GetByUserCompany implements employment.EmploymentRepository.
func (r *employmentRepository) GetByUserCompany(ctx context.Context, userID, companyID string) (employment.Employment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, company_id, hourly_wage, type
		FROM employments
		WHERE user_id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	var emp employment.Employment
	var contractType string
	err := q.QueryRow(ctx, query, userID, companyID).Scan(
		&emp.UserID, &emp.CompanyID, &emp.HourlyWage, &contractType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employment.Employment{}, employment.ErrEmploymentNotFound
		}
		return employment.Employment{}, fmt.Errorf("failed to get employment: %w", err)
	}

	emp.Type = employment.ContractType(contractType)
	return emp, nil
}
