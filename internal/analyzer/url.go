// internal/analyzer/url.go
//
// URL scan: normalize, validate, then fabricate a verdict.  Rejection
// happens before the generator runs, so a bad URL never consumes a
// random draw.
package analyzer

import (
	"net/url"
	"strings"
	"time"
)

// urlUnsafeOdds is the probability a scanned URL reports unsafe.
const urlUnsafeOdds = 0.4

// URLDetails are the per-scan detail fields.
type URLDetails struct {
	Reputation  string
	SSL         bool
	ContentType string
}

// URLReport is the outcome of a URL scan.
type URLReport struct {
	URL       string
	ScannedAt time.Time
	Safe      bool
	Category  string
	Details   URLDetails
}

// NormalizeURL trims raw and prefixes https:// when no scheme is
// present, matching what the scan form does before validation.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// ScanURL normalizes and validates raw, then fabricates a verdict.
func (a *Analyzer) ScanURL(raw string) (*URLReport, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ValidationError("Please enter a URL to scan.")
	}
	normalized := NormalizeURL(raw)
	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" || strings.ContainsAny(normalized, " \t") {
		return nil, ValidationError("Please enter a valid URL.")
	}

	safe := a.src.Float64() > urlUnsafeOdds

	category := "Safe"
	details := URLDetails{Reputation: "Good", SSL: true, ContentType: "text/html"}
	if !safe {
		if a.src.Float64() > 0.5 {
			category = "Phishing"
		} else {
			category = "Malware"
		}
		details = URLDetails{
			Reputation:  "Poor",
			SSL:         a.src.Float64() > 0.5,
			ContentType: "text/html",
		}
	}

	return &URLReport{
		URL:       normalized,
		ScannedAt: a.now(),
		Safe:      safe,
		Category:  category,
		Details:   details,
	}, nil
}
