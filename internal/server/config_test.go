package server

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-prepay/internal/config"
	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"github.com/iwvelando/loan-prepay/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("expected default max request size, got %d", cfg.RequestSizeBytes())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxRequestSize: 2M
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.RequestSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max request override, got %d", cfg.RequestSizeBytes())
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxRequestSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid size but got nil")
	}
}

func TestSetRequestSizeBytes(t *testing.T) {
	cfg, _ := LoadConfig("")
	cfg.SetRequestSizeBytes(0)
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("non-positive override should be ignored, got %d", cfg.RequestSizeBytes())
	}
	cfg.SetRequestSizeBytes(4096)
	if cfg.RequestSizeBytes() != 4096 || cfg.MaxRequestSize != "4096" {
		t.Fatalf("expected override to 4096, got %d (%s)", cfg.RequestSizeBytes(), cfg.MaxRequestSize)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxRequestSizeBytes,
		"1024":      1024,
		"512b":      512,
		"64K":       64 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1GB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}

func TestLoadConfigLoanDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	contents := []byte(`loan:
  amountUnit: 10000
  method: differential
  maxTermMonths: 480
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Loan.AmountUnit != 10000 {
		t.Errorf("expected amountUnit 10000, got %v", cfg.Loan.AmountUnit)
	}
	if cfg.Loan.Method != "equal-principal" {
		t.Errorf("expected method normalized to equal-principal, got %q", cfg.Loan.Method)
	}
	if cfg.Loan.MaxTermMonths != 480 {
		t.Errorf("expected maxTermMonths 480, got %d", cfg.Loan.MaxTermMonths)
	}

	defaults := DefaultConfig().Loan
	if defaults.AmountUnit != constants.DefaultAmountUnit || defaults.MaxTermMonths != constants.MaxTermMonths || defaults.Method != "" {
		t.Errorf("unexpected default loan settings %+v", defaults)
	}
}

func TestLoadConfigInvalidLoanDefaults(t *testing.T) {
	tests := map[string]string{
		"unknown method":      "loan:\n  method: balloon\n",
		"negative unit":       "loan:\n  amountUnit: -1\n",
		"term above maximum":  "loan:\n  maxTermMonths: 1201\n",
		"negative term limit": "loan:\n  maxTermMonths: -12\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server-config.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoanDefaultsApply(t *testing.T) {
	defaults := LoanDefaults{AmountUnit: 10000, Method: "equal-installment", MaxTermMonths: 360}

	loan, err := defaults.Apply(config.Loan{Principal: 100, TermMonths: 360})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if loan.AmountUnit != 10000 || loan.Method != "equal-installment" {
		t.Errorf("expected defaults to fill empty fields, got %+v", loan)
	}

	loan, err = defaults.Apply(config.Loan{AmountUnit: 1, Method: "equal-principal", Principal: 100, TermMonths: 12})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if loan.AmountUnit != 1 || loan.Method != "equal-principal" {
		t.Errorf("explicit fields should win, got %+v", loan)
	}

	_, err = defaults.Apply(config.Loan{Principal: 100, TermMonths: 361})
	if !errors.Is(err, amortization.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for a term above the limit, got %v", err)
	}
}
