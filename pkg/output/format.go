// Package output provides utilities for formatting and displaying schedule
// comparisons.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-prepay/pkg/amortization"
	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/iwvelando/loan-prepay/pkg/format"
)

// Write renders result in the named output format. The pretty table takes
// its number grouping from locale; machine-readable formats ignore it.
func Write(w io.Writer, outputFormat, locale string, result amortization.ComparisonResult) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return writePretty(w, format.NewPrinterFor(locale), result)
	case constants.OutputFormatCSV:
		return WriteCsv(w, result)
	case constants.OutputFormatJSON:
		return WriteJSON(w, result)
	case constants.OutputFormatChart:
		return WriteChart(w, result)
	}
	return fmt.Errorf("unsupported output format %s", outputFormat)
}

// CsvString returns the CSV output as a string.
func CsvString(result amortization.ComparisonResult) string {
	var buf bytes.Buffer
	_ = WriteCsv(&buf, result)
	return buf.String()
}

// WritePretty writes the merged comparison table followed by a summary.
func WritePretty(w io.Writer, result amortization.ComparisonResult) error {
	return writePretty(w, format.NewPrinter(format.DefaultLanguage), result)
}

func writePretty(w io.Writer, p *format.Printer, result amortization.ComparisonResult) error {
	var b strings.Builder

	b.WriteString("--- Repayment schedule comparison ---\n")
	fmt.Fprintf(&b, "%-8s | %-10s | %14s | %14s | %14s | %14s | %16s\n",
		"Period", "Schedule", "Payment", "Interest", "Principal", "Prepayment", "Remaining")
	fmt.Fprintf(&b, "%-8s | %-10s | %14s | %14s | %14s | %14s | %16s\n",
		"______", "________", "_______", "________", "_________", "__________", "_________")
	for _, rec := range result.Merged {
		prepayment := ""
		if rec.IsPrepaymentPeriod {
			prepayment = p.Amount(rec.Prepayment)
		}
		fmt.Fprintf(&b, "%-8s | %-10s | %14s | %14s | %14s | %14s | %16s\n",
			rec.Label, rec.Tag, p.Amount(rec.Payment), p.Amount(rec.InterestPortion),
			p.Amount(rec.PrincipalPortion), prepayment, p.Amount(rec.RemainingPrincipal))
	}

	s := result.Summary
	b.WriteString("\n--- Summary ---\n")
	fmt.Fprintf(&b, "Total interest (original):   %s over %d periods\n", p.Amount(s.BaselineInterest), s.BaselinePeriods)
	fmt.Fprintf(&b, "Total interest (prepayment): %s over %d periods\n", p.Amount(s.PrepaymentInterest), s.PrepaymentPeriods)
	if s.PrepaymentPeriod > 0 {
		fmt.Fprintf(&b, "Prepayment of %s in period %d\n", p.Amount(s.PrepaymentAmount), s.PrepaymentPeriod)
		fmt.Fprintf(&b, "Payment in that period: %s -> %s\n", p.Amount(s.PaymentBefore), p.Amount(s.PaymentAfter))
		fmt.Fprintf(&b, "Interest saved: %s, periods saved: %d\n", p.Amount(s.InterestSaved), s.PeriodsSaved)
	} else {
		b.WriteString("No prepayment applied\n")
	}
	for _, notice := range notices(result) {
		fmt.Fprintf(&b, "Note: %s\n", notice.Message)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCsv writes one row per merged record.
func WriteCsv(w io.Writer, result amortization.ComparisonResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "label", "schedule", "payment", "interest", "principal", "prepayment", "remaining", "prepayment period"}); err != nil {
		return err
	}
	for _, rec := range result.Merged {
		row := []string{
			strconv.Itoa(rec.Index),
			rec.Label,
			string(rec.Tag),
			money(rec.Payment),
			money(rec.InterestPortion),
			money(rec.PrincipalPortion),
			money(rec.Prepayment),
			money(rec.RemainingPrincipal),
			strconv.FormatBool(rec.IsPrepaymentPeriod),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteChart writes the remaining-balance series, one row per period label.
// A period a schedule no longer covers is left empty.
func WriteChart(w io.Writer, result amortization.ComparisonResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "original", "prepayment"}); err != nil {
		return err
	}
	for _, point := range result.BalanceSeries() {
		if err := cw.Write([]string{point.Label, optionalMoney(point.Original), optionalMoney(point.Prepayment)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full comparison result.
func WriteJSON(w io.Writer, result amortization.ComparisonResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', constants.DecimalPlaces, 64)
}

func optionalMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return money(*v)
}

// notices returns the notices of both schedules without duplicates.
func notices(result amortization.ComparisonResult) []amortization.Notice {
	seen := make(map[amortization.Notice]struct{})
	var out []amortization.Notice
	for _, list := range [][]amortization.Notice{result.Baseline.Notices, result.WithPrepayment.Notices} {
		for _, n := range list {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
