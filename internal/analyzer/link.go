// internal/analyzer/link.go
//
// Bulk link analysis: newline-delimited input, one independent verdict
// per non-blank line.
package analyzer

import (
	"strings"
	"time"
)

// linkUnsafeOdds is the probability each link reports unsafe.
const linkUnsafeOdds = 0.3

// linkCategories is the unsafe-category pool, drawn uniformly.
var linkCategories = []string{"Phishing", "Malware", "Suspicious", "Scam"}

// LinkRow is the verdict for a single submitted link.
type LinkRow struct {
	Link       string
	Safe       bool
	Category   string
	Reputation string
}

// LinkReport is the outcome of a bulk link analysis.
type LinkReport struct {
	Links     []string
	ScannedAt time.Time
	Rows      []LinkRow
}

// AnalyzeLinks splits blob on newlines, drops blank lines, and
// fabricates an independent verdict per remaining line.  An input that
// trims down to nothing is a validation error, not a zero-row success.
func (a *Analyzer) AnalyzeLinks(blob string) (*LinkReport, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, ValidationError("Please enter at least one link to analyze.")
	}

	var links []string
	for _, line := range strings.Split(blob, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			links = append(links, l)
		}
	}
	if len(links) == 0 {
		return nil, ValidationError("Please enter at least one valid link.")
	}

	report := &LinkReport{Links: links, ScannedAt: a.now()}
	for _, link := range links {
		row := LinkRow{Link: link, Safe: a.src.Float64() > linkUnsafeOdds}
		if row.Safe {
			row.Category = "Safe"
			row.Reputation = "Good"
		} else {
			row.Category = linkCategories[a.src.Intn(len(linkCategories))]
			row.Reputation = "Poor"
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}
