package amortization

import (
	"fmt"

	"github.com/iwvelando/loan-prepay/pkg/datetime"
	"github.com/iwvelando/loan-prepay/pkg/mathutil"
	"go.uber.org/zap"
)

// ScheduleBuilder generates amortization schedules. It holds no per-loan
// state and may be shared between goroutines.
type ScheduleBuilder struct {
	logger   *zap.Logger
	calendar datetime.PeriodCalendar
}

// NewScheduleBuilder creates a new builder instance. A nil logger discards
// output and a nil calendar uses monthly periods.
func NewScheduleBuilder(logger *zap.Logger, calendar datetime.PeriodCalendar) *ScheduleBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calendar == nil {
		calendar = datetime.MonthlyCalendar{}
	}
	return &ScheduleBuilder{logger: logger, calendar: calendar}
}

// PrepaymentPeriod resolves the period the prepayment event applies to. It
// returns 0 when the parameters carry no event; ok is false when an event
// was requested but resolves to a period outside the term.
func (b *ScheduleBuilder) PrepaymentPeriod(params LoanParameters) (index int, ok bool) {
	if !params.HasPrepayment() {
		return 0, true
	}
	index = b.calendar.PeriodIndex(params.FirstPeriodDate, params.PrepaymentDate)
	if index < 1 || index > params.TermMonths {
		return index, false
	}
	return index, true
}

// Build creates the complete schedule for params, applying the prepayment
// event when one is present.
func (b *ScheduleBuilder) Build(params LoanParameters) (Schedule, error) {
	if err := params.Validate(); err != nil {
		return Schedule{}, err
	}

	var schedule Schedule
	calc := params.Method.Calculator()
	rate := PeriodRate(params.AnnualRatePercent)

	if rate == 0 && params.Method == EqualInstallment {
		schedule.Notices = append(schedule.Notices, Notice{
			Kind:    NoticeDegenerateRate,
			Message: "zero interest rate, payment is principal divided evenly over the term",
		})
	}

	eventIndex, inRange := b.PrepaymentPeriod(params)
	if !inRange {
		b.logger.Debug("prepayment falls outside the loan term, ignoring",
			zap.String("op", "amortization.Build"),
			zap.Int("period", eventIndex),
			zap.Int("term", params.TermMonths),
		)
		schedule.Notices = append(schedule.Notices, Notice{
			Kind:    NoticePrepaymentOutOfRange,
			Period:  eventIndex,
			Message: fmt.Sprintf("prepayment resolves to period %d outside 1..%d", eventIndex, params.TermMonths),
		})
		eventIndex = 0
	}

	remaining := params.Principal
	plan := calc.Plan(remaining, rate, params.TermMonths)
	schedule.Records = make([]PeriodRecord, 0, params.TermMonths)

	for period := 1; period <= params.TermMonths; period++ {
		applied := 0.0
		if period == eventIndex {
			applied = params.PrepaymentAmount
			if applied > remaining {
				b.logger.Debug("capping prepayment to outstanding balance",
					zap.String("op", "amortization.Build"),
					zap.Int("period", period),
					zap.Float64("requested", applied),
					zap.Float64("capped_to_balance", remaining),
				)
				schedule.Notices = append(schedule.Notices, Notice{
					Kind:    NoticePrepaymentClamped,
					Period:  period,
					Message: fmt.Sprintf("prepayment %.2f exceeds balance %.2f", applied, remaining),
				})
				applied = remaining
			}
			remaining -= applied
			// The maturity date is kept; only the payment changes.
			plan = calc.Plan(remaining, rate, params.TermMonths-(period-1))
			b.logger.Debug("applied prepayment",
				zap.String("op", "amortization.Build"),
				zap.Int("period", period),
				zap.Float64("amount", applied),
				zap.Float64("remaining", remaining),
				zap.Float64("plan", plan),
			)
		}

		interest := InterestPortion(remaining, rate)
		payment, principal := calc.Split(plan, interest)

		// The final period takes whatever is left so machine error never
		// leaves a residual balance.
		if period == params.TermMonths || principal >= remaining || mathutil.IsZero(remaining-principal) {
			principal = remaining
			payment = principal + interest
		}
		remaining = mathutil.Max(0, remaining-principal)

		schedule.Records = append(schedule.Records, PeriodRecord{
			Index:              period,
			Label:              b.calendar.Label(params.FirstPeriodDate, period),
			Payment:            mathutil.Round(payment),
			InterestPortion:    mathutil.Round(interest),
			PrincipalPortion:   mathutil.Round(principal),
			RemainingPrincipal: mathutil.Round(remaining),
			IsPrepaymentPeriod: period == eventIndex,
			Prepayment:         mathutil.Round(applied),
		})

		if remaining == 0 {
			if period < params.TermMonths {
				b.logger.Debug("loan paid off before maturity",
					zap.String("op", "amortization.Build"),
					zap.Int("period", period),
					zap.Int("term", params.TermMonths),
				)
			}
			break
		}
	}

	return schedule, nil
}
