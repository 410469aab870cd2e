package amortization

import (
	"math"

	"github.com/iwvelando/loan-prepay/pkg/constants"
)

// PeriodRate converts an annual percentage rate into the monthly decimal rate.
func PeriodRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// InterestPortion calculates the interest accrued on remainingPrincipal over
// one period.
func InterestPortion(remainingPrincipal, periodRate float64) float64 {
	return remainingPrincipal * periodRate
}

// PaymentCalculator commits a payment plan for the remaining term and splits
// each period's payment into interest and principal under that plan.
type PaymentCalculator interface {
	// Plan returns the amount held constant until the next recomputation: the
	// total payment for EqualInstallment, the principal portion for
	// EqualPrincipal.
	Plan(principal, periodRate float64, remainingMonths int) float64

	// Split returns the payment and principal portion for a period accruing
	// interest under the committed plan.
	Split(plan, interest float64) (payment, principal float64)
}

// Calculator returns the PaymentCalculator for the method.
func (m Method) Calculator() PaymentCalculator {
	if m == EqualPrincipal {
		return equalPrincipal{}
	}
	return equalInstallment{}
}

type equalInstallment struct{}

// Plan uses the annuity formula, falling back to a straight-line split when
// the rate is zero.
func (equalInstallment) Plan(principal, periodRate float64, remainingMonths int) float64 {
	if remainingMonths <= 0 {
		return principal
	}
	if periodRate == 0 {
		return principal / float64(remainingMonths)
	}
	power := math.Pow(1.00+periodRate, float64(remainingMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodRate / discountFactor
}

func (equalInstallment) Split(plan, interest float64) (float64, float64) {
	return plan, plan - interest
}

type equalPrincipal struct{}

func (equalPrincipal) Plan(principal, _ float64, remainingMonths int) float64 {
	if remainingMonths <= 0 {
		return principal
	}
	return principal / float64(remainingMonths)
}

func (equalPrincipal) Split(plan, interest float64) (float64, float64) {
	return plan + interest, plan
}
