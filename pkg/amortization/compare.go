package amortization

import (
	"github.com/iwvelando/loan-prepay/pkg/datetime"
	"github.com/iwvelando/loan-prepay/pkg/mathutil"
	"go.uber.org/zap"
)

// Comparator runs the baseline and with-prepayment schedules side by side.
type Comparator struct {
	logger  *zap.Logger
	builder *ScheduleBuilder
}

// NewComparator creates a Comparator backed by a ScheduleBuilder using the
// given logger and calendar.
func NewComparator(logger *zap.Logger, calendar datetime.PeriodCalendar) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{
		logger:  logger,
		builder: NewScheduleBuilder(logger, calendar),
	}
}

// Compare computes both schedules for params with a discarding logger and
// monthly periods.
func Compare(params LoanParameters) (ComparisonResult, error) {
	return NewComparator(nil, nil).Compare(params)
}

// Compare computes the baseline schedule, the with-prepayment schedule and
// their merged, summarised comparison. Parameter validation happens in Build.
func (c *Comparator) Compare(params LoanParameters) (ComparisonResult, error) {
	baseline, err := c.builder.Build(params.WithoutPrepayment())
	if err != nil {
		return ComparisonResult{}, err
	}
	withPrepayment, err := c.builder.Build(params)
	if err != nil {
		return ComparisonResult{}, err
	}

	result := ComparisonResult{
		Baseline:       baseline,
		WithPrepayment: withPrepayment,
		Merged:         Merge(baseline, withPrepayment),
		Summary:        summarize(baseline, withPrepayment),
	}

	c.logger.Debug("computed schedule comparison",
		zap.String("op", "amortization.Compare"),
		zap.String("method", params.Method.String()),
		zap.Int("baseline_periods", result.Summary.BaselinePeriods),
		zap.Int("prepayment_periods", result.Summary.PrepaymentPeriods),
		zap.Float64("interest_saved", result.Summary.InterestSaved),
	)

	return result, nil
}

// Merge interleaves two schedules period by period, the baseline record
// first. Once either schedule ends the other continues alone.
func Merge(baseline, withPrepayment Schedule) []TaggedRecord {
	n := len(baseline.Records)
	if len(withPrepayment.Records) > n {
		n = len(withPrepayment.Records)
	}

	merged := make([]TaggedRecord, 0, len(baseline.Records)+len(withPrepayment.Records))
	for i := 0; i < n; i++ {
		if i < len(baseline.Records) {
			merged = append(merged, TaggedRecord{Tag: TagOriginal, PeriodRecord: baseline.Records[i]})
		}
		if i < len(withPrepayment.Records) {
			merged = append(merged, TaggedRecord{Tag: TagPrepayment, PeriodRecord: withPrepayment.Records[i]})
		}
	}
	return merged
}

// BalanceSeries pairs the remaining balance of both schedules by period
// label for charting.
func (r ComparisonResult) BalanceSeries() []BalancePoint {
	n := len(r.Baseline.Records)
	if len(r.WithPrepayment.Records) > n {
		n = len(r.WithPrepayment.Records)
	}

	series := make([]BalancePoint, 0, n)
	for i := 0; i < n; i++ {
		var point BalancePoint
		if i < len(r.Baseline.Records) {
			rec := r.Baseline.Records[i]
			point.Label = rec.Label
			v := rec.RemainingPrincipal
			point.Original = &v
		}
		if i < len(r.WithPrepayment.Records) {
			rec := r.WithPrepayment.Records[i]
			point.Label = rec.Label
			v := rec.RemainingPrincipal
			point.Prepayment = &v
		}
		series = append(series, point)
	}
	return series
}

func summarize(baseline, withPrepayment Schedule) Summary {
	summary := Summary{
		BaselineInterest:   baseline.TotalInterest(),
		PrepaymentInterest: withPrepayment.TotalInterest(),
		BaselinePeriods:    baseline.Len(),
		PrepaymentPeriods:  withPrepayment.Len(),
	}
	summary.InterestSaved = mathutil.Round(summary.BaselineInterest - summary.PrepaymentInterest)
	summary.PeriodsSaved = summary.BaselinePeriods - summary.PrepaymentPeriods

	if event, ok := withPrepayment.PrepaymentRecord(); ok {
		summary.PrepaymentPeriod = event.Index
		summary.PrepaymentAmount = event.Prepayment
		summary.PaymentAfter = event.Payment
		if event.Index <= len(baseline.Records) {
			summary.PaymentBefore = baseline.Records[event.Index-1].Payment
		}
	}
	return summary
}
