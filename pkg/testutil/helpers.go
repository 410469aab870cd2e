// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-prepay/pkg/amortization"
)

// FindRecord finds the merged record with the given tag and period index.
// Returns nil if the comparison has no such record.
func FindRecord(merged []amortization.TaggedRecord, tag amortization.Tag, index int) *amortization.TaggedRecord {
	for i := range merged {
		if merged[i].Tag == tag && merged[i].Index == index {
			return &merged[i]
		}
	}
	return nil
}

// RepaidPrincipal sums the principal portions and prepayments of a schedule.
func RepaidPrincipal(schedule amortization.Schedule) float64 {
	total := 0.0
	for _, rec := range schedule.Records {
		total += rec.PrincipalPortion + rec.Prepayment
	}
	return total
}

// WriteTempFile writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteTempFile(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
