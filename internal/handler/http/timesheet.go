package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eventshift/eventshift-backend-go/internal/domain/timesheet"
	"github.com/eventshift/eventshift-backend-go/internal/domain/wage"
	"github.com/eventshift/eventshift-backend-go/internal/handler/http/response"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListForEmployment(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ResetWork(w http.ResponseWriter, r *http.Request)
	GetWage(w http.ResponseWriter, r *http.Request)
	ReconcileEventSpan(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	wageService      wage.WageService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, wageService wage.WageService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		wageService:      wageService,
	}
}

type workdayResponse struct {
	TimesheetID string  `json:"timesheet_id"`
	Date        string  `json:"date"`
	TotalHours  float64 `json:"total_hours"`
	Comment     *string `json:"comment,omitempty"`
	IsEditable  bool    `json:"is_editable"`
}

type timesheetResponse struct {
	ID             string            `json:"id"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	TotalHours     float64           `json:"total_hours"`
	IsEditable     bool              `json:"is_editable"`
	Status         string            `json:"status"`
	ManagerNote    *string           `json:"manager_note,omitempty"`
	UserID         string            `json:"user_id"`
	CompanyID      string            `json:"company_id"`
	EventID        string            `json:"event_id"`
	EventName      string            `json:"event_name"`
	EventAvatarURL string            `json:"event_avatar_url"`
	Workdays       []workdayResponse `json:"workdays,omitempty"`
}

func toTimesheetResponse(ts timesheet.Timesheet, workdays []timesheet.Workday) timesheetResponse {
	resp := timesheetResponse{
		ID:             ts.ID,
		StartDate:      ts.StartDate.Format(validator.DateLayout),
		EndDate:        ts.EndDate.Format(validator.DateLayout),
		TotalHours:     ts.TotalHours,
		IsEditable:     ts.IsEditable,
		Status:         string(ts.Status),
		ManagerNote:    ts.ManagerNote,
		UserID:         ts.UserID,
		CompanyID:      ts.CompanyID,
		EventID:        ts.EventID,
		EventName:      ts.EventName,
		EventAvatarURL: ts.EventAvatarURL,
	}

	for _, wd := range workdays {
		resp.Workdays = append(resp.Workdays, workdayResponse{
			TimesheetID: wd.TimesheetID,
			Date:        wd.Date.Format(validator.DateLayout),
			TotalHours:  wd.TotalHours,
			Comment:     wd.Comment,
			IsEditable:  wd.IsEditable,
		})
	}

	return resp
}

// Create implements TimesheetHandler.
func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create timesheet request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet created", toTimesheetResponse(result.Timesheet, result.Workdays))
}

func parsePaging(r *http.Request) (limit, offset int, err error) {
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}

const defaultListLimit = 50

func (h *timesheetHandlerImpl) list(w http.ResponseWriter, r *http.Request, userID, companyID string) {
	limit, offset, err := parsePaging(r)
	if err != nil {
		response.BadRequest(w, "limit and offset must be integers", nil)
		return
	}

	// Resolved here so the meta block echoes the limit actually applied.
	if limit == 0 {
		limit = defaultListLimit
	}

	filter := timesheet.ListTimesheetsFilter{
		UserID:    userID,
		CompanyID: companyID,
		Limit:     limit,
		Offset:    offset,
	}

	sheets, err := h.timesheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]timesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		items = append(items, toTimesheetResponse(ts, nil))
	}

	response.SuccessWithMeta(w, items, &response.Meta{Limit: filter.Limit, Offset: filter.Offset})
}

// List implements TimesheetHandler.
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("user_id"), r.URL.Query().Get("company_id"))
}

// ListForEmployment implements TimesheetHandler.
func (h *timesheetHandlerImpl) ListForEmployment(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, chi.URLParam(r, "userID"), chi.URLParam(r, "companyID"))
}

func timesheetIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "timesheetID")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "timesheetID must be a valid UUID", nil)
		return "", false
	}
	return id, true
}

// Get implements TimesheetHandler.
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := timesheetIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toTimesheetResponse(result.Timesheet, result.Workdays))
}

// Update implements TimesheetHandler.
func (h *timesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update timesheet request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id, ok := timesheetIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toTimesheetResponse(result.Timesheet, result.Workdays))
}

// ResetWork implements TimesheetHandler.
func (h *timesheetHandlerImpl) ResetWork(w http.ResponseWriter, r *http.Request) {
	id, ok := timesheetIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.ResetWork(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet work reset", toTimesheetResponse(result.Timesheet, result.Workdays))
}

type wageReportResponse struct {
	TotalWage    wage.DetailedWage            `json:"total_wage"`
	Currency     string                       `json:"currency"`
	HourlyWage   string                       `json:"hourly_wage"`
	MonthlyWages map[string]wage.DetailedWage `json:"monthly_wages"`
	Err          string                       `json:"error,omitempty"`
}

// GetWage implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetWage(w http.ResponseWriter, r *http.Request) {
	tradeLicenseSigned := r.URL.Query().Get("trade_license_signed") == "true"

	id, ok := timesheetIDParam(w, r)
	if !ok {
		return
	}

	report, err := h.wageService.GetTimesheetWage(r.Context(), id, tradeLicenseSigned)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := wageReportResponse{
		TotalWage:    report.TotalWage,
		Currency:     report.Currency,
		HourlyWage:   report.HourlyWage.String(),
		MonthlyWages: make(map[string]wage.DetailedWage, len(report.MonthlyWages)),
		Err:          report.Err,
	}
	for key, monthly := range report.MonthlyWages {
		resp.MonthlyWages[key.String()] = monthly
	}

	response.Success(w, resp)
}

type reconcileSpanRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReconcileEventSpan implements TimesheetHandler. Invoked by the event
// editor whenever an event's date range changes.
func (h *timesheetHandlerImpl) ReconcileEventSpan(w http.ResponseWriter, r *http.Request) {
	var req reconcileSpanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode reconcile span request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	start, err := validator.ParseDate(req.StartDate)
	if err != nil {
		response.BadRequest(w, "start_date must be a valid date in YYYY-MM-DD format", nil)
		return
	}

	end, err := validator.ParseDate(req.EndDate)
	if err != nil {
		response.BadRequest(w, "end_date must be a valid date in YYYY-MM-DD format", nil)
		return
	}

	if err := h.timesheetService.ReconcileEventSpan(r.Context(), chi.URLParam(r, "eventID"), start, end); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets reconciled", nil)
}

// Delete implements TimesheetHandler.
func (h *timesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := timesheetIDParam(w, r)
	if !ok {
		return
	}

	if err := h.timesheetService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet deleted", nil)
}
