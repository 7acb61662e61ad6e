package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	t.id, t.start_date, t.end_date, t.total_hours, t.is_editable, t.status,
	t.manager_note, t.user_id, t.company_id, t.event_id,
	e.name, e.avatar_url, t.created_at, t.edited_at, t.deleted_at`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	var status string

	err := row.Scan(
		&ts.ID, &ts.StartDate, &ts.EndDate, &ts.TotalHours, &ts.IsEditable, &status,
		&ts.ManagerNote, &ts.UserID, &ts.CompanyID, &ts.EventID,
		&ts.EventName, &ts.EventAvatarURL, &ts.CreatedAt, &ts.EditedAt, &ts.DeletedAt,
	)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	ts.Status = timesheet.ApprovalStatus(status)
	return ts, nil
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO timesheets (
				start_date, end_date, total_hours, is_editable, status,
				manager_note, user_id, company_id, event_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + timesheetColumns + `
		FROM inserted t
		JOIN events e ON e.id = t.event_id
	`

	created, err := scanTimesheet(q.QueryRow(ctx, query,
		ts.StartDate,
		ts.EndDate,
		ts.TotalHours,
		ts.IsEditable,
		string(ts.Status),
		ts.ManagerNote,
		ts.UserID,
		ts.CompanyID,
		ts.EventID,
	))
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return created, nil
}

// CreateWorkdays implements timesheet.TimesheetRepository.
func (r *timesheetRepository) CreateWorkdays(ctx context.Context, timesheetID string, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workdays (timesheet_id, date, total_hours, is_editable)
		SELECT $1, d::date, 0, TRUE
		FROM generate_series($2::date, $3::date, '1 day'::interval) AS d
		ON CONFLICT (timesheet_id, date) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, timesheetID, start, end); err != nil {
		return fmt.Errorf("failed to create workdays: %w", err)
	}

	return nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets t
		JOIN events e ON e.id = t.event_id
		WHERE t.id = $1
		  AND t.deleted_at IS NULL
	`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return ts, nil
}

// ListWorkdays implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListWorkdays(ctx context.Context, timesheetID string) ([]timesheet.Workday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT timesheet_id, date, total_hours, comment, is_editable, created_at, edited_at
		FROM workdays
		WHERE timesheet_id = $1
		  AND deleted_at IS NULL
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workdays: %w", err)
	}
	defer rows.Close()

	var workdays []timesheet.Workday
	for rows.Next() {
		var wd timesheet.Workday
		err := rows.Scan(
			&wd.TimesheetID, &wd.Date, &wd.TotalHours, &wd.Comment,
			&wd.IsEditable, &wd.CreatedAt, &wd.EditedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workday: %w", err)
		}
		workdays = append(workdays, wd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read workdays: %w", err)
	}

	return workdays, nil
}

func (r *timesheetRepository) listTimesheets(ctx context.Context, query string, args ...interface{}) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timesheets: %w", err)
	}

	return timesheets, nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.ListTimesheetsFilter) ([]timesheet.Timesheet, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets t
		JOIN events e ON e.id = t.event_id
		WHERE t.deleted_at IS NULL
	`
	args := []interface{}{}

	if filter.UserID != "" && filter.CompanyID != "" {
		query += ` AND t.user_id = $1 AND t.company_id = $2`
		args = append(args, filter.UserID, filter.CompanyID)
	}

	query += fmt.Sprintf(` ORDER BY t.created_at DESC, t.id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filter.Offset)

	return r.listTimesheets(ctx, query, args...)
}

// ListOverlapping implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListOverlapping(ctx context.Context, userID, companyID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets t
		JOIN events e ON e.id = t.event_id
		WHERE t.user_id = $1
		  AND t.company_id = $2
		  AND t.deleted_at IS NULL
		  AND t.start_date <= $4
		  AND t.end_date >= $3
		ORDER BY t.start_date, t.id
	`

	return r.listTimesheets(ctx, query, userID, companyID, from, to)
}

// ListByEvent implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListByEvent(ctx context.Context, eventID string) ([]timesheet.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets t
		JOIN events e ON e.id = t.event_id
		WHERE t.event_id = $1
		  AND t.deleted_at IS NULL
		ORDER BY t.id
	`

	return r.listTimesheets(ctx, query, eventID)
}

// ExistsForTriple implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ExistsForTriple(ctx context.Context, userID, companyID, eventID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM timesheets
			WHERE user_id = $1
			  AND company_id = $2
			  AND event_id = $3
			  AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, companyID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check timesheet existence: %w", err)
	}

	return exists, nil
}

// Update implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Update(ctx context.Context, id string, upd timesheet.TimesheetUpdate) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	query := `
		WITH updated AS (
			UPDATE timesheets
			SET start_date = COALESCE($1, start_date),
				end_date = COALESCE($2, end_date),
				total_hours = COALESCE($3, total_hours),
				is_editable = COALESCE($4, is_editable),
				status = COALESCE($5, status),
				manager_note = COALESCE($6, manager_note),
				edited_at = NOW()
			WHERE id = $7
			  AND deleted_at IS NULL
			RETURNING *
		)
		SELECT ` + timesheetColumns + `
		FROM updated t
		JOIN events e ON e.id = t.event_id
	`

	ts, err := scanTimesheet(q.QueryRow(ctx, query,
		upd.StartDate,
		upd.EndDate,
		upd.TotalHours,
		upd.IsEditable,
		status,
		upd.ManagerNote,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to update timesheet: %w", err)
	}

	return ts, nil
}

// UpdateWorkday implements timesheet.TimesheetRepository.
func (r *timesheetRepository) UpdateWorkday(ctx context.Context, timesheetID string, patch timesheet.WorkdayUpdate) error {
	q := GetQuerier(ctx, r.db)

	// No row for (timesheet, date) means the patch targets a date outside
	// the span; it is skipped on purpose.
	query := `
		UPDATE workdays
		SET total_hours = COALESCE($1, total_hours),
			comment = COALESCE($2, comment),
			is_editable = COALESCE($3, is_editable),
			edited_at = NOW()
		WHERE timesheet_id = $4
		  AND date = $5
		  AND deleted_at IS NULL
	`

	if _, err := q.Exec(ctx, query, patch.TotalHours, patch.Comment, patch.IsEditable, timesheetID, patch.Date); err != nil {
		return fmt.Errorf("failed to update workday: %w", err)
	}

	return nil
}

// ResetWorkdays implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ResetWorkdays(ctx context.Context, timesheetID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workdays
		SET total_hours = 0,
			comment = NULL,
			edited_at = NOW()
		WHERE timesheet_id = $1
		  AND deleted_at IS NULL
	`

	if _, err := q.Exec(ctx, query, timesheetID); err != nil {
		return fmt.Errorf("failed to reset workdays: %w", err)
	}

	return nil
}

// AdjustSpan implements timesheet.TimesheetRepository.
func (r *timesheetRepository) AdjustSpan(ctx context.Context, id string, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET start_date = $1,
			end_date = $2,
			edited_at = NOW()
		WHERE id = $3
		  AND deleted_at IS NULL
	`

	if _, err := q.Exec(ctx, query, start, end, id); err != nil {
		return fmt.Errorf("failed to adjust timesheet span: %w", err)
	}

	return nil
}

// DeleteWorkdaysOutside implements timesheet.TimesheetRepository.
func (r *timesheetRepository) DeleteWorkdaysOutside(ctx context.Context, timesheetID string, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM workdays
		WHERE timesheet_id = $1
		  AND (date < $2 OR date > $3)
	`

	if _, err := q.Exec(ctx, query, timesheetID, start, end); err != nil {
		return fmt.Errorf("failed to delete out-of-span workdays: %w", err)
	}

	return nil
}

// SoftDelete implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET deleted_at = NOW(),
			edited_at = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	if err := q.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}

	return nil
}

// SoftDeleteWorkdays implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SoftDeleteWorkdays(ctx context.Context, timesheetID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workdays
		SET deleted_at = NOW(),
			edited_at = NOW()
		WHERE timesheet_id = $1
		  AND deleted_at IS NULL
	`

	if _, err := q.Exec(ctx, query, timesheetID); err != nil {
		return fmt.Errorf("failed to delete workdays: %w", err)
	}

	return nil
}
