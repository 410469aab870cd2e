package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/loan-prepay/pkg/amortization"
)

func TestLoanWarnings(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := amortization.LoanParameters{
		Principal:         1000000,
		AnnualRatePercent: 3.5,
		TermMonths:        360,
		Method:            amortization.EqualInstallment,
	}

	tests := []struct {
		name     string
		mutate   func(p *amortization.LoanParameters)
		contains []string
	}{
		{
			name:   "No prepayment",
			mutate: func(p *amortization.LoanParameters) {},
		},
		{
			name: "Valid prepayment",
			mutate: func(p *amortization.LoanParameters) {
				p.FirstPeriodDate = first
				p.PrepaymentDate = first.AddDate(1, 0, 0)
				p.PrepaymentAmount = 100000
			},
		},
		{
			name:     "High rate",
			mutate:   func(p *amortization.LoanParameters) { p.AnnualRatePercent = 35 },
			contains: []string{"unusually high"},
		},
		{
			name: "Missing first period date",
			mutate: func(p *amortization.LoanParameters) {
				p.PrepaymentDate = first
				p.PrepaymentAmount = 100
			},
			contains: []string{"without a first period date"},
		},
		{
			name: "Missing prepayment date",
			mutate: func(p *amortization.LoanParameters) {
				p.FirstPeriodDate = first
				p.PrepaymentAmount = 100
			},
			contains: []string{"without a prepayment date"},
		},
		{
			name: "Date without amount",
			mutate: func(p *amortization.LoanParameters) {
				p.FirstPeriodDate = first
				p.PrepaymentDate = first
			},
			contains: []string{"without an amount"},
		},
		{
			name: "Outside term",
			mutate: func(p *amortization.LoanParameters) {
				p.FirstPeriodDate = first
				p.PrepaymentDate = first.AddDate(40, 0, 0)
				p.PrepaymentAmount = 100
			},
			contains: []string{"outside the loan term", "period 481 of 360"},
		},
		{
			name: "Exceeds principal",
			mutate: func(p *amortization.LoanParameters) {
				p.FirstPeriodDate = first
				p.PrepaymentDate = first.AddDate(0, 6, 0)
				p.PrepaymentAmount = 2000000
			},
			contains: []string{"capped to the outstanding balance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)
			warnings := LoanWarnings(params, nil)

			if len(tt.contains) == 0 && len(warnings) != 0 {
				t.Fatalf("expected no warnings, got %v", warnings)
			}
			joined := strings.Join(warnings, "\n")
			for _, want := range tt.contains {
				if !strings.Contains(joined, want) {
					t.Errorf("warnings %v missing %q", warnings, want)
				}
			}
		})
	}
}
