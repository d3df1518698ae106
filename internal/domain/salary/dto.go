package salary

import (
	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/validator"
)

type AllowancesPayload struct {
	Transport    decimal.Decimal `json:"transport" validate:"gte=0"`
	Meal         decimal.Decimal `json:"meal" validate:"gte=0"`
	OvertimeRate decimal.Decimal `json:"overtime_rate" validate:"gte=0"`
	Special      decimal.Decimal `json:"special" validate:"gte=0"`
}

type DeductionsPayload struct {
	TaxPercent           decimal.Decimal `json:"tax_percent" validate:"gte=0,lte=100"`
	ProvidentFundPercent decimal.Decimal `json:"provident_fund_percent" validate:"gte=0,lte=100"`
	InsuranceFlat        decimal.Decimal `json:"insurance_flat" validate:"gte=0"`
}

type UpsertConfigurationRequest struct {
	EmployeeID    string            `json:"-"`
	BasicSalary   decimal.Decimal   `json:"basic_salary" validate:"gte=0"`
	HourlyRate    *decimal.Decimal  `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Allowances    AllowancesPayload `json:"allowances"`
	Deductions    DeductionsPayload `json:"deductions"`
	EffectiveDate string            `json:"effective_date" validate:"required,datetime=2006-01-02"`
}

func (r *UpsertConfigurationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	if err := validator.Struct(r); err != nil {
		tagErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, tagErrs...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToConfiguration converts a validated request.
func (r *UpsertConfigurationRequest) ToConfiguration() Configuration {
	effectiveDate, _ := validator.IsValidDate(r.EffectiveDate)
	return Configuration{
		EmployeeID:  r.EmployeeID,
		BasicSalary: r.BasicSalary,
		HourlyRate:  r.HourlyRate,
		Allowances: Allowances{
			Transport:    r.Allowances.Transport,
			Meal:         r.Allowances.Meal,
			OvertimeRate: r.Allowances.OvertimeRate,
			Special:      r.Allowances.Special,
		},
		Deductions: Deductions{
			TaxPercent:           r.Deductions.TaxPercent,
			ProvidentFundPercent: r.Deductions.ProvidentFundPercent,
			InsuranceFlat:        r.Deductions.InsuranceFlat,
		},
		EffectiveDate: effectiveDate,
	}
}

type ConfigurationResponse struct {
	EmployeeID         string            `json:"employee_id"`
	BasicSalary        decimal.Decimal   `json:"basic_salary"`
	HourlyRate         decimal.Decimal   `json:"hourly_rate"`
	HourlyRateExplicit bool              `json:"hourly_rate_explicit"`
	Allowances         AllowancesPayload `json:"allowances"`
	Deductions         DeductionsPayload `json:"deductions"`
	EffectiveDate      string            `json:"effective_date"`
	IsDefault          bool              `json:"is_default"`
}

func NewConfigurationResponse(c Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		EmployeeID:         c.EmployeeID,
		BasicSalary:        c.BasicSalary,
		HourlyRate:         c.EffectiveHourlyRate().Round(2),
		HourlyRateExplicit: c.HourlyRate != nil && !c.IsDefault,
		Allowances: AllowancesPayload{
			Transport:    c.Allowances.Transport,
			Meal:         c.Allowances.Meal,
			OvertimeRate: c.Allowances.OvertimeRate,
			Special:      c.Allowances.Special,
		},
		Deductions: DeductionsPayload{
			TaxPercent:           c.Deductions.TaxPercent,
			ProvidentFundPercent: c.Deductions.ProvidentFundPercent,
			InsuranceFlat:        c.Deductions.InsuranceFlat,
		},
		EffectiveDate: c.EffectiveDate.Format("2006-01-02"),
		IsDefault:     c.IsDefault,
	}
}
