package amortization

import "errors"

// ErrInvalidParameter is returned when LoanParameters fail validation. No
// schedule is produced.
var ErrInvalidParameter = errors.New("invalid loan parameter")

// NoticeKind names a condition the engine handled by policy instead of
// failing the calculation.
type NoticeKind string

const (
	// NoticeDegenerateRate: a zero rate with EqualInstallment used the
	// straight-line payment.
	NoticeDegenerateRate NoticeKind = "degenerate-rate"
	// NoticePrepaymentOutOfRange: the prepayment date fell outside the term and
	// no event was applied.
	NoticePrepaymentOutOfRange NoticeKind = "prepayment-out-of-range"
	// NoticePrepaymentClamped: the prepayment exceeded the outstanding balance
	// and was reduced to it.
	NoticePrepaymentClamped NoticeKind = "prepayment-exceeds-balance"
)

// Notice records a handled condition on a Schedule.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Period  int        `json:"period,omitempty"`
	Message string     `json:"message"`
}
