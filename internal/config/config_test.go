package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"go.uber.org/zap"
)

const sampleConfig = `logging:
  level: debug
  format: console
output:
  format: csv
  locale: en-US
loan:
  amountUnit: 10000
  principal: 100
  annualRatePercent: 3.5
  termMonths: 360
  method: equal-installment
  firstPeriodDate: "2024-01-01"
  prepayment:
    date: "2025-01-01"
    amount: 10
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" || conf.Output.Locale != "en-US" {
		t.Errorf("unexpected output config %+v", conf.Output)
	}
	if conf.Loan.Principal != 100 || conf.Loan.AmountUnit != 10000 {
		t.Errorf("unexpected loan amounts %+v", conf.Loan)
	}
	if conf.Loan.TermMonths != 360 || conf.Loan.Method != "equal-installment" {
		t.Errorf("unexpected loan terms %+v", conf.Loan)
	}
	if conf.Loan.FirstPeriodDate != "2024-01-01" || conf.Loan.Prepayment.Date != "2025-01-01" {
		t.Errorf("unexpected loan dates %+v", conf.Loan)
	}
	if conf.Loan.Prepayment.Amount != 10 {
		t.Errorf("unexpected prepayment amount %v", conf.Loan.Prepayment.Amount)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigurationFromReaderInvalidYAML(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader("loan: [unterminated"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoanParametersScalesDisplayUnits(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	params, err := conf.Loan.Parameters()
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}

	if params.Principal != 1000000 {
		t.Errorf("Principal = %v, expected 1000000", params.Principal)
	}
	if params.PrepaymentAmount != 100000 {
		t.Errorf("PrepaymentAmount = %v, expected 100000", params.PrepaymentAmount)
	}
	if params.Method != amortization.EqualInstallment {
		t.Errorf("Method = %v, expected equal-installment", params.Method)
	}
	if params.FirstPeriodDate.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("FirstPeriodDate = %v", params.FirstPeriodDate)
	}
	if !params.HasPrepayment() {
		t.Error("expected a prepayment event")
	}
}

func TestLoanParametersDefaultUnit(t *testing.T) {
	loan := Loan{Principal: 5000, AnnualRatePercent: 5, TermMonths: 12, Method: "equal-principal"}
	params, err := loan.Parameters()
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}
	if params.Principal != 5000 {
		t.Errorf("Principal = %v, expected 5000", params.Principal)
	}
	if params.Method != amortization.EqualPrincipal {
		t.Errorf("Method = %v, expected equal-principal", params.Method)
	}
	if !params.FirstPeriodDate.IsZero() || params.HasPrepayment() {
		t.Errorf("expected no dates or prepayment, got %+v", params)
	}
}

func TestLoanParametersErrors(t *testing.T) {
	valid := Loan{Principal: 5000, AnnualRatePercent: 5, TermMonths: 12, Method: "annuity"}

	tests := []struct {
		name   string
		mutate func(l *Loan)
	}{
		{"Unknown method", func(l *Loan) { l.Method = "balloon" }},
		{"Missing method", func(l *Loan) { l.Method = "" }},
		{"Bad first date", func(l *Loan) { l.FirstPeriodDate = "01/02/2024" }},
		{"Bad prepayment date", func(l *Loan) { l.Prepayment.Date = "soon" }},
		{"Negative unit", func(l *Loan) { l.AmountUnit = -1 }},
		{"Zero principal", func(l *Loan) { l.Principal = 0 }},
		{"Zero term", func(l *Loan) { l.TermMonths = 0 }},
		{"Negative rate", func(l *Loan) { l.AnnualRatePercent = -1 }},
		{"Negative prepayment", func(l *Loan) { l.Prepayment.Amount = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := valid
			tt.mutate(&loan)
			_, err := loan.Parameters()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, amortization.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestLoanCompare(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	result, err := conf.Loan.Compare(zap.NewNop())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.PrepaymentPeriod != 13 {
		t.Errorf("PrepaymentPeriod = %d, expected 13", result.Summary.PrepaymentPeriod)
	}
	if result.WithPrepayment.Records[12].Label != "2025-01" {
		t.Errorf("event label = %s, expected 2025-01", result.WithPrepayment.Records[12].Label)
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{Loan: Loan{
		Principal: 100, AnnualRatePercent: 3.5, TermMonths: 12, Method: "equal-principal",
		FirstPeriodDate: "2024-01", Prepayment: Prepayment{Date: "2030-01", Amount: 10},
	}}
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "outside the loan term") {
		t.Errorf("expected one out-of-term warning, got %v", warnings)
	}

	conf.Loan.Method = "unknown"
	if warnings := conf.ValidateConfiguration(); warnings != nil {
		t.Errorf("expected no warnings for invalid parameters, got %v", warnings)
	}
}
