package config

import (
	"fmt"

	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/iwvelando/loan-prepay/pkg/datetime"
	"github.com/iwvelando/loan-prepay/pkg/validation"
	"go.uber.org/zap"
)

// Loan is the loan form as entered. Amounts are in display units and are
// multiplied by AmountUnit (e.g. 10000) to obtain base currency units.
type Loan struct {
	AmountUnit        float64    `yaml:"amountUnit,omitempty" json:"amountUnit,omitempty"`
	Principal         float64    `yaml:"principal" json:"principal"`
	AnnualRatePercent float64    `yaml:"annualRatePercent" json:"annualRatePercent"`
	TermMonths        int        `yaml:"termMonths" json:"termMonths"`
	Method            string     `yaml:"method" json:"method"`
	FirstPeriodDate   string     `yaml:"firstPeriodDate,omitempty" json:"firstPeriodDate,omitempty"`
	Prepayment        Prepayment `yaml:"prepayment,omitempty" json:"prepayment,omitempty"`
}

// Prepayment is the optional lump-sum event.
type Prepayment struct {
	Date   string  `yaml:"date,omitempty" json:"date,omitempty"`
	Amount float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// Unit returns the display-unit multiplier, defaulting to 1.
func (loan Loan) Unit() float64 {
	if loan.AmountUnit == 0 {
		return constants.DefaultAmountUnit
	}
	return loan.AmountUnit
}

// Parameters converts the form into validated engine parameters.
func (loan Loan) Parameters() (amortization.LoanParameters, error) {
	unit := loan.Unit()
	if unit < 0 {
		return amortization.LoanParameters{}, fmt.Errorf("%w: amount unit must be positive, got %v", amortization.ErrInvalidParameter, unit)
	}

	method, err := amortization.ParseMethod(loan.Method)
	if err != nil {
		return amortization.LoanParameters{}, err
	}

	first, err := datetime.ParseDate(loan.FirstPeriodDate)
	if err != nil {
		return amortization.LoanParameters{}, fmt.Errorf("%w: first period date: %v", amortization.ErrInvalidParameter, err)
	}
	prepaymentDate, err := datetime.ParseDate(loan.Prepayment.Date)
	if err != nil {
		return amortization.LoanParameters{}, fmt.Errorf("%w: prepayment date: %v", amortization.ErrInvalidParameter, err)
	}

	params := amortization.LoanParameters{
		Principal:         loan.Principal * unit,
		AnnualRatePercent: loan.AnnualRatePercent,
		TermMonths:        loan.TermMonths,
		Method:            method,
		FirstPeriodDate:   first,
		PrepaymentDate:    prepaymentDate,
		PrepaymentAmount:  loan.Prepayment.Amount * unit,
	}
	if err := params.Validate(); err != nil {
		return amortization.LoanParameters{}, err
	}
	return params, nil
}

// Compare converts the loan and computes its schedule comparison.
func (loan Loan) Compare(logger *zap.Logger) (amortization.ComparisonResult, error) {
	params, err := loan.Parameters()
	if err != nil {
		return amortization.ComparisonResult{}, err
	}
	return amortization.NewComparator(logger, datetime.MonthlyCalendar{}).Compare(params)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Parameters that fail outright are reported by Parameters.
func (conf *Configuration) ValidateConfiguration() []string {
	params, err := conf.Loan.Parameters()
	if err != nil {
		return nil
	}
	return validation.LoanWarnings(params, datetime.MonthlyCalendar{})
}
