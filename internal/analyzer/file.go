// internal/analyzer/file.go
//
// File scan: name and size are inspected, content never is.  A dirty
// verdict always carries the same two-item threat list.
package analyzer

import (
	"fmt"
	"strings"
	"time"
)

// fileThreatOdds is the probability a scanned file reports threats.
const fileThreatOdds = 0.3

// allowedExtensions is the upload allowlist, lowercase without dots.
var allowedExtensions = []string{"txt", "pdf", "png", "jpg", "jpeg", "exe", "dll", "zip", "rar"}

// fixedThreats is the canned result attached to every dirty verdict.
var fixedThreats = []Threat{
	{Type: "Malware", Name: "Trojan.Generic.12345", Severity: "High"},
	{Type: "PUP", Name: "Adware.BrowserModifier", Severity: "Medium"},
}

// Threat is one detection row in a FileReport.
type Threat struct {
	Type     string
	Name     string
	Severity string
}

// FileReport is the outcome of a file scan.  Immutable once returned.
type FileReport struct {
	FileName  string
	FileSize  string
	ScannedAt time.Time
	Clean     bool
	Threats   []Threat
}

// ScanFile validates name and size, then fabricates a verdict.
func (a *Analyzer) ScanFile(name string, size int64) (*FileReport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError("Please select a file to scan.")
	}
	if size > a.MaxFileSize {
		return nil, ValidationError(fmt.Sprintf(
			"File is too large.  Maximum size is %s.", FormatSize(a.MaxFileSize)))
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 || !extensionAllowed(strings.ToLower(name[dot+1:])) {
		return nil, ValidationError(
			"Invalid file type.  Allowed types are: " + strings.Join(allowedExtensions, ", ") + ".")
	}

	report := &FileReport{
		FileName:  name,
		FileSize:  FormatSize(size),
		ScannedAt: a.now(),
		Clean:     a.src.Float64() > fileThreatOdds,
	}
	if !report.Clean {
		report.Threats = append(report.Threats, fixedThreats...)
	}
	return report, nil
}

func extensionAllowed(ext string) bool {
	for _, e := range allowedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// FormatSize renders a byte count the way the upload UI shows it,
// e.g. 1536 → "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if size == float64(int64(size)) {
		return fmt.Sprintf("%d %s", int64(size), units[i])
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
