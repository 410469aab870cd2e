// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"github.com/iwvelando/loan-prepay/pkg/datetime"
	"github.com/iwvelando/loan-prepay/pkg/mathutil"
)

// highRatePercent is the annual rate above which a warning is raised; typos
// such as 35 instead of 3.5 are common.
const highRatePercent = 30.0

// LoanWarnings returns non-fatal observations about params. They do not stop
// a calculation; the engine handles each case by policy.
func LoanWarnings(params amortization.LoanParameters, calendar datetime.PeriodCalendar) []string {
	if calendar == nil {
		calendar = datetime.MonthlyCalendar{}
	}
	var warnings []string

	if params.AnnualRatePercent > highRatePercent {
		warnings = append(warnings, fmt.Sprintf("annual rate %.2f%% is unusually high", params.AnnualRatePercent))
	}

	if params.PrepaymentAmount > 0 {
		switch {
		case params.FirstPeriodDate.IsZero():
			warnings = append(warnings, "prepayment amount given without a first period date - no prepayment will be applied")
		case params.PrepaymentDate.IsZero():
			warnings = append(warnings, "prepayment amount given without a prepayment date - no prepayment will be applied")
		default:
			index := calendar.PeriodIndex(params.FirstPeriodDate, params.PrepaymentDate)
			if index < 1 || index > params.TermMonths {
				warnings = append(warnings, fmt.Sprintf("prepayment date %s falls outside the loan term (period %d of %d) - no prepayment will be applied",
					params.PrepaymentDate.Format(datetime.DateLayout), index, params.TermMonths))
			}
		}
		if params.PrepaymentAmount >= params.Principal {
			warnings = append(warnings, fmt.Sprintf("prepayment %.2f is not less than the principal %.2f - it will be capped to the outstanding balance",
				mathutil.Round(params.PrepaymentAmount), mathutil.Round(params.Principal)))
		}
	} else if !params.PrepaymentDate.IsZero() {
		warnings = append(warnings, "prepayment date given without an amount - no prepayment will be applied")
	}

	return warnings
}
