package response

import (
	"errors"
	"net/http"

	"github.com/eventshift/eventshift-backend-go/internal/domain/employment"
	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrTimesheetExists):
		Conflict(w, "A timesheet for this employee, employer and event already exists")
	case errors.Is(err, timesheet.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, timesheet.ErrEmptyUpdate):
		BadRequest(w, "Update request contains no fields", nil)
	case errors.Is(err, timesheet.ErrInvalidApprovalStatus):
		BadRequest(w, "Invalid approval status", nil)

	// Wage preset domain errors
	case errors.Is(err, wagepreset.ErrPresetNotFound):
		NotFound(w, "Wage preset not found")

	// Employment domain errors
	case errors.Is(err, employment.ErrEmploymentNotFound):
		NotFound(w, "Employment not found")
	case errors.Is(err, employment.ErrInvalidContractType):
		BadRequest(w, "Invalid contract type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
