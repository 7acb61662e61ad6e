package http

import (
	"net/http"

	"github.com/eventshift/eventshift-backend-go/internal/domain/wagepreset"
	"github.com/eventshift/eventshift-backend-go/internal/handler/http/response"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type WagePresetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetValidForDate(w http.ResponseWriter, r *http.Request)
}

type wagePresetHandlerImpl struct {
	presetRepo wagepreset.WagePresetRepository
}

// NewWagePresetHandler exposes the read-only preset store. Presets are
// seeded out of band, so the handler sits directly on the repository.
func NewWagePresetHandler(presetRepo wagepreset.WagePresetRepository) WagePresetHandler {
	return &wagePresetHandlerImpl{presetRepo: presetRepo}
}

type wagePresetResponse struct {
	Name        string  `json:"name"`
	ValidFrom   string  `json:"valid_from"`
	ValidTo     *string `json:"valid_to,omitempty"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`

	MonthlyDPPEmployeeNoTaxLimit decimal.Decimal `json:"monthly_dpp_employee_no_tax_limit"`
	MonthlyDPPEmployerNoTaxLimit decimal.Decimal `json:"monthly_dpp_employer_no_tax_limit"`
	MonthlyDPCEmployeeNoTaxLimit decimal.Decimal `json:"monthly_dpc_employee_no_tax_limit"`
	MonthlyDPCEmployerNoTaxLimit decimal.Decimal `json:"monthly_dpc_employer_no_tax_limit"`

	HealthInsuranceEmployeePct decimal.Decimal `json:"health_insurance_employee_tax_pct"`
	SocialInsuranceEmployeePct decimal.Decimal `json:"social_insurance_employee_tax_pct"`
	HealthInsuranceEmployerPct decimal.Decimal `json:"health_insurance_employer_tax_pct"`
	SocialInsuranceEmployerPct decimal.Decimal `json:"social_insurance_employer_tax_pct"`

	MinHourlyWage       decimal.Decimal `json:"min_hourly_wage"`
	MinMonthlyHPPSalary decimal.Decimal `json:"min_monthly_hpp_salary"`
}

func toWagePresetResponse(p wagepreset.WagePreset) wagePresetResponse {
	resp := wagePresetResponse{
		Name:        p.Name,
		ValidFrom:   p.ValidFrom.Format(validator.DateLayout),
		Currency:    p.Currency,
		Description: p.Description,

		MonthlyDPPEmployeeNoTaxLimit: p.MonthlyDPPEmployeeNoTaxLimit,
		MonthlyDPPEmployerNoTaxLimit: p.MonthlyDPPEmployerNoTaxLimit,
		MonthlyDPCEmployeeNoTaxLimit: p.MonthlyDPCEmployeeNoTaxLimit,
		MonthlyDPCEmployerNoTaxLimit: p.MonthlyDPCEmployerNoTaxLimit,

		HealthInsuranceEmployeePct: p.HealthInsuranceEmployeePct,
		SocialInsuranceEmployeePct: p.SocialInsuranceEmployeePct,
		HealthInsuranceEmployerPct: p.HealthInsuranceEmployerPct,
		SocialInsuranceEmployerPct: p.SocialInsuranceEmployerPct,

		MinHourlyWage:       p.MinHourlyWage,
		MinMonthlyHPPSalary: p.MinMonthlyHPPSalary,
	}

	if p.ValidTo != nil {
		validTo := p.ValidTo.Format(validator.DateLayout)
		resp.ValidTo = &validTo
	}

	return resp
}

// List implements WagePresetHandler.
func (h *wagePresetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.presetRepo.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]wagePresetResponse, 0, len(presets))
	for _, p := range presets {
		items = append(items, toWagePresetResponse(p))
	}

	response.Success(w, items)
}

// Get implements WagePresetHandler.
func (h *wagePresetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	preset, err := h.presetRepo.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toWagePresetResponse(preset))
}

// GetValidForDate implements WagePresetHandler.
func (h *wagePresetHandlerImpl) GetValidForDate(w http.ResponseWriter, r *http.Request) {
	date, err := validator.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "date must be a valid date in YYYY-MM-DD format", nil)
		return
	}

	preset, err := h.presetRepo.GetForDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if preset == nil {
		response.NotFound(w, "No wage preset is valid for this date")
		return
	}

	response.Success(w, toWagePresetResponse(*preset))
}
