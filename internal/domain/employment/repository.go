package employment

import (
	"context"
	"errors"
)

var ErrEmploymentNotFound = errors.New("employment not found")

// EmploymentRepository reads the employment record backing a wage
// computation.
type EmploymentRepository interface {
	GetByUserCompany(ctx context.Context, userID, companyID string) (Employment, error)
}
