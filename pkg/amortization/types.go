// Package amortization computes month-by-month repayment schedules for
// fixed-rate loans and compares a baseline schedule with one that applies a
// single lump-sum prepayment.
package amortization

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/iwvelando/loan-prepay/pkg/mathutil"
)

// Method selects the amortization convention.
type Method int

const (
	// EqualInstallment keeps the total payment constant; the principal share grows.
	EqualInstallment Method = iota
	// EqualPrincipal keeps the principal share constant; the payment shrinks.
	EqualPrincipal
)

// String returns the canonical text form of the method.
func (m Method) String() string {
	switch m {
	case EqualInstallment:
		return "equal-installment"
	case EqualPrincipal:
		return "equal-principal"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts a method name into a Method. Matching ignores case,
// spaces, dashes and underscores.
func ParseMethod(name string) (Method, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch key {
	case "equalinstallment", "installment", "annuity":
		return EqualInstallment, nil
	case "equalprincipal", "principal", "differential":
		return EqualPrincipal, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidParameter, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m != EqualInstallment && m != EqualPrincipal {
		return nil, fmt.Errorf("%w: unknown method %d", ErrInvalidParameter, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LoanParameters is the complete input of one calculation. Amounts are in base
// currency units. A zero time.Time means the date is absent.
type LoanParameters struct {
	Principal         float64
	AnnualRatePercent float64
	TermMonths        int
	Method            Method
	FirstPeriodDate   time.Time
	PrepaymentDate    time.Time
	PrepaymentAmount  float64
}

// Validate rejects parameters the engine cannot compute a schedule for.
func (p LoanParameters) Validate() error {
	switch {
	case !mathutil.IsFinite(p.Principal) || p.Principal <= 0:
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidParameter, p.Principal)
	case p.TermMonths <= 0:
		return fmt.Errorf("%w: term must be a positive number of months, got %d", ErrInvalidParameter, p.TermMonths)
	case p.TermMonths > constants.MaxTermMonths:
		return fmt.Errorf("%w: term of %d months exceeds the maximum of %d", ErrInvalidParameter, p.TermMonths, constants.MaxTermMonths)
	case !mathutil.IsFinite(p.AnnualRatePercent) || p.AnnualRatePercent < 0:
		return fmt.Errorf("%w: annual rate must not be negative, got %v", ErrInvalidParameter, p.AnnualRatePercent)
	case !mathutil.IsFinite(p.PrepaymentAmount) || p.PrepaymentAmount < 0:
		return fmt.Errorf("%w: prepayment amount must not be negative, got %v", ErrInvalidParameter, p.PrepaymentAmount)
	case p.Method != EqualInstallment && p.Method != EqualPrincipal:
		return fmt.Errorf("%w: unknown method %d", ErrInvalidParameter, int(p.Method))
	}
	return nil
}

// HasPrepayment reports whether the parameters describe a prepayment event.
func (p LoanParameters) HasPrepayment() bool {
	return p.PrepaymentAmount > 0 && !p.FirstPeriodDate.IsZero() && !p.PrepaymentDate.IsZero()
}

// WithoutPrepayment returns a copy of p with the prepayment event removed.
func (p LoanParameters) WithoutPrepayment() LoanParameters {
	p.PrepaymentAmount = 0
	p.PrepaymentDate = time.Time{}
	return p
}

// PeriodRecord holds the values for a given period. Monetary values are
// rounded to two fractional digits.
type PeriodRecord struct {
	Index              int     `json:"index"`
	Label              string  `json:"label"`
	Payment            float64 `json:"payment"`
	InterestPortion    float64 `json:"interest"`
	PrincipalPortion   float64 `json:"principal"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
	IsPrepaymentPeriod bool    `json:"isPrepaymentPeriod"`
	// Prepayment is the lump sum applied in this period after clamping.
	Prepayment float64 `json:"prepayment,omitempty"`
}

// Schedule is the ordered output of one ScheduleBuilder run.
type Schedule struct {
	Records []PeriodRecord `json:"records"`
	Notices []Notice       `json:"notices,omitempty"`
}

// Len returns the number of periods in the schedule.
func (s Schedule) Len() int {
	return len(s.Records)
}

// HasNotice reports whether the run raised the given notice.
func (s Schedule) HasNotice(kind NoticeKind) bool {
	for _, n := range s.Notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}

// PrepaymentRecord returns the record flagged as the prepayment period.
func (s Schedule) PrepaymentRecord() (PeriodRecord, bool) {
	for _, r := range s.Records {
		if r.IsPrepaymentPeriod {
			return r, true
		}
	}
	return PeriodRecord{}, false
}

// TotalInterest sums the interest portions of every record.
func (s Schedule) TotalInterest() float64 {
	values := make([]float64, len(s.Records))
	for i, r := range s.Records {
		values[i] = r.InterestPortion
	}
	return mathutil.Sum(values...)
}

// Tag identifies which schedule a merged record came from.
type Tag string

const (
	// TagOriginal marks a record of the schedule without the prepayment.
	TagOriginal Tag = "original"
	// TagPrepayment marks a record of the schedule with the prepayment applied.
	TagPrepayment Tag = "prepayment"
)

// TaggedRecord is a PeriodRecord in the merged comparison sequence.
type TaggedRecord struct {
	Tag Tag `json:"tag"`
	PeriodRecord
}

// ComparisonResult pairs the baseline and with-prepayment schedules.
type ComparisonResult struct {
	Baseline       Schedule       `json:"baseline"`
	WithPrepayment Schedule       `json:"withPrepayment"`
	Merged         []TaggedRecord `json:"merged"`
	Summary        Summary        `json:"summary"`
}

// Summary condenses what the prepayment changed.
type Summary struct {
	BaselineInterest   float64 `json:"baselineInterest"`
	PrepaymentInterest float64 `json:"prepaymentInterest"`
	InterestSaved      float64 `json:"interestSaved"`
	BaselinePeriods    int     `json:"baselinePeriods"`
	PrepaymentPeriods  int     `json:"prepaymentPeriods"`
	PeriodsSaved       int     `json:"periodsSaved"`
	// PrepaymentPeriod is 0 when no event was applied.
	PrepaymentPeriod int     `json:"prepaymentPeriod"`
	PrepaymentAmount float64 `json:"prepaymentAmount"`
	PaymentBefore    float64 `json:"paymentBefore"`
	PaymentAfter     float64 `json:"paymentAfter"`
}

// BalancePoint is one entry of the remaining-balance chart series. A nil
// balance means that schedule had already ended.
type BalancePoint struct {
	Label      string   `json:"label"`
	Original   *float64 `json:"original"`
	Prepayment *float64 `json:"prepayment"`
}
