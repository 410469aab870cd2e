// Package format renders monetary amounts for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguage is used when no locale is requested.
var DefaultLanguage = language.English

// Printer formats amounts for one locale.
type Printer struct {
	p *message.Printer
}

// NewPrinter creates a Printer using the grouping and decimal conventions
// of tag.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag)}
}

// NewPrinterFor parses a BCP 47 locale such as "en-US" or "de". An empty or
// unparseable locale falls back to DefaultLanguage.
func NewPrinterFor(locale string) *Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = DefaultLanguage
	}
	return NewPrinter(tag)
}

// Amount returns the value with two fractional digits and the locale's
// grouping (e.g., "-1,234.56" in English, "-1.234,56" in German).
func (pr *Printer) Amount(amount float64) string {
	return pr.p.Sprintf("%.2f", normalize(amount))
}

// normalize drops negative zero and sub-cent negatives that would otherwise
// print as "-0.00".
func normalize(amount float64) float64 {
	if amount < 0 && amount > -0.005 {
		return 0
	}
	return amount
}
