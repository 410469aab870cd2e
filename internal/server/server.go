// Package server exposes the schedule comparison over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-prepay/internal/config"
	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/iwvelando/loan-prepay/pkg/datetime"
	"github.com/iwvelando/loan-prepay/pkg/output"
	"github.com/iwvelando/loan-prepay/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	defaults       LoanDefaults
	version        string
	comparator     *amortization.Comparator
	metrics        *metrics
}

// NewHandler constructs the HTTP handler that serves the schedule API. A nil
// cfg uses DefaultConfig.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxRequestSize := cfg.RequestSizeBytes()
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	registry := prometheus.NewRegistry()
	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		defaults:       cfg.Loan,
		version:        trimmedVersion,
		comparator:     amortization.NewComparator(logger, datetime.MonthlyCalendar{}),
		metrics:        newMetrics(registry),
	}

	mux := http.NewServeMux()

	// Schedule API endpoint taking the loan form as JSON
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Schedule API endpoint taking a full YAML configuration file
	mux.HandleFunc("/api/config", h.handleConfig)

	// Converts the loan form into a configuration file the CLI can load
	mux.HandleFunc("/api/export", h.handleExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return h.withRequestID(mux)
}

type scheduleResponse struct {
	RequestID string                       `json:"requestId"`
	Result    amortization.ComparisonResult `json:"result"`
	Chart     []amortization.BalancePoint   `json:"chart"`
	CSV       string                        `json:"csv"`
	Warnings  []string                      `json:"warnings,omitempty"`
	Duration  string                        `json:"duration"`
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	loan, ok := h.decodeLoan(w, r, op)
	if !ok {
		return
	}

	h.runComparison(w, r, loan, start, op)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	loan, ok := h.decodeLoan(w, r, op)
	if !ok {
		return
	}

	loan, err := h.defaults.Apply(loan)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	// Only export what the CLI will accept back.
	if _, err := loan.Parameters(); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	configYAML, err := yaml.Marshal(config.Configuration{
		Loan:   loan,
		Output: config.OutputConfig{Format: constants.OutputFormatPretty},
	})
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(configYAML),
	})
}

// decodeLoan reads the JSON loan form from a size-limited body. It writes the
// error response itself and reports false on failure.
func (h *handler) decodeLoan(w http.ResponseWriter, r *http.Request, op string) (config.Loan, bool) {
	var loan config.Loan
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&loan); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return config.Loan{}, false
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode loan: %v", err), op)
		return config.Loan{}, false
	}
	return loan, true
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfig"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runComparison(w, r, conf.Loan, start, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runComparison(w http.ResponseWriter, r *http.Request, loan config.Loan, start time.Time, op string) {
	loan, err := h.defaults.Apply(loan)
	if err != nil {
		h.metrics.observe(loan.Method, outcomeInvalid, time.Since(start))
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	params, err := loan.Parameters()
	if err != nil {
		h.metrics.observe(loan.Method, outcomeInvalid, time.Since(start))
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := h.comparator.Compare(params)
	if err != nil {
		status := http.StatusInternalServerError
		outcome := outcomeError
		if errors.Is(err, amortization.ErrInvalidParameter) {
			status, outcome = http.StatusBadRequest, outcomeInvalid
		}
		h.metrics.observe(params.Method.String(), outcome, time.Since(start))
		h.respondError(w, r, status, fmt.Sprintf("failed to compute schedule: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.metrics.observe(params.Method.String(), outcomeOK, elapsed)

	response := scheduleResponse{
		RequestID: r.Header.Get(RequestIDHeader),
		Result:    result,
		Chart:     result.BalanceSeries(),
		CSV:       output.CsvString(result),
		Warnings:  validation.LoanWarnings(params, datetime.MonthlyCalendar{}),
		Duration:  elapsed.String(),
	}

	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.String("request_id", response.RequestID),
		zap.String("method", params.Method.String()),
		zap.Int("baseline_periods", result.Summary.BaselinePeriods),
		zap.Int("prepayment_periods", result.Summary.PrepaymentPeriods),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.String("request_id", r.Header.Get(RequestIDHeader)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
