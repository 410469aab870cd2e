package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/loan-prepay/internal/config"
	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/iwvelando/loan-prepay/pkg/mathutil"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address        string               `yaml:"address"`
	MaxRequestSize string               `yaml:"maxRequestSize"`
	Logging        config.LoggingConfig `yaml:"logging"`
	Loan           LoanDefaults         `yaml:"loan"`

	requestSizeBytes int64
}

// LoanDefaults fills loan form fields a request leaves empty and bounds the
// term a request may ask for.
type LoanDefaults struct {
	AmountUnit    float64 `yaml:"amountUnit"`
	Method        string  `yaml:"method"`
	MaxTermMonths int     `yaml:"maxTermMonths"`
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	// The zero value always normalizes.
	_ = cfg.normalize()
	return cfg
}

// LoadConfig loads the server configuration from YAML. A missing file or an
// empty path yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestSizeBytes returns the configured request size limit in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// SetRequestSizeBytes overrides the configured request size limit.
func (c *Config) SetRequestSizeBytes(size int64) {
	if size > 0 {
		c.requestSizeBytes = size
		c.MaxRequestSize = strconv.FormatInt(size, 10)
	}
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxRequestSize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxRequestSizeBytes
	}
	c.requestSizeBytes = size
	c.MaxRequestSize = strconv.FormatInt(size, 10)

	return c.Loan.normalize()
}

func (d *LoanDefaults) normalize() error {
	switch {
	case d.AmountUnit < 0 || !mathutil.IsFinite(d.AmountUnit):
		return fmt.Errorf("loan.amountUnit must be positive, got %v", d.AmountUnit)
	case d.AmountUnit == 0:
		d.AmountUnit = constants.DefaultAmountUnit
	}

	if d.Method != "" {
		method, err := amortization.ParseMethod(d.Method)
		if err != nil {
			return fmt.Errorf("loan.method: %w", err)
		}
		d.Method = method.String()
	}

	switch {
	case d.MaxTermMonths < 0 || d.MaxTermMonths > constants.MaxTermMonths:
		return fmt.Errorf("loan.maxTermMonths must be between 1 and %d, got %d", constants.MaxTermMonths, d.MaxTermMonths)
	case d.MaxTermMonths == 0:
		d.MaxTermMonths = constants.MaxTermMonths
	}
	return nil
}

// Apply returns loan with empty fields taken from the defaults. A term above
// MaxTermMonths is rejected with amortization.ErrInvalidParameter.
func (d LoanDefaults) Apply(loan config.Loan) (config.Loan, error) {
	if loan.AmountUnit == 0 {
		loan.AmountUnit = d.AmountUnit
	}
	if strings.TrimSpace(loan.Method) == "" {
		loan.Method = d.Method
	}
	if d.MaxTermMonths > 0 && loan.TermMonths > d.MaxTermMonths {
		return loan, fmt.Errorf("%w: term of %d months exceeds this server's limit of %d",
			amortization.ErrInvalidParameter, loan.TermMonths, d.MaxTermMonths)
	}
	return loan, nil
}

// ParseSize converts a human-friendly byte string (e.g., "64K", "1M") into bytes.
// An empty string yields the default request size.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	if split == -1 {
		split = len(trimmed)
	}
	if split == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	unit := strings.TrimSpace(trimmed[split:])
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}

	n, err := strconv.ParseInt(trimmed[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
