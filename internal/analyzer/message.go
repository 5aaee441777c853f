// internal/analyzer/message.go
//
// Message analysis: spam verdict, score band, and 1–3 indicators drawn
// in order from a fixed pool.
package analyzer

import (
	"strings"
	"time"
)

// messageSpamOdds is the probability a message reports as spam.
const messageSpamOdds = 0.4

// Score bands: legitimate messages score 0–30, spam 60–100.
const (
	legitimateScoreCeiling = 30.0
	spamScoreFloor         = 60.0
	spamScoreSpread        = 40.0
)

// indicatorPool is the fixed set of spam indicators; a spam verdict
// takes a prefix of 1–3 entries.
var indicatorPool = []string{
	"Suspicious keywords detected",
	"Unusual message structure",
	"Contains suspicious links",
	"Asks for personal information",
}

// MessageReport is the outcome of a message analysis.
type MessageReport struct {
	Message    string
	ScannedAt  time.Time
	Legitimate bool
	SpamScore  float64
	Indicators []string
}

// AnalyzeMessage validates msg, then fabricates a verdict.
func (a *Analyzer) AnalyzeMessage(msg string) (*MessageReport, error) {
	if strings.TrimSpace(msg) == "" {
		return nil, ValidationError("Please enter a message to analyze.")
	}

	legit := a.src.Float64() > messageSpamOdds

	report := &MessageReport{
		Message:    msg,
		ScannedAt:  a.now(),
		Legitimate: legit,
	}
	if legit {
		report.SpamScore = a.src.Float64() * legitimateScoreCeiling
	} else {
		report.SpamScore = spamScoreFloor + a.src.Float64()*spamScoreSpread
		report.Indicators = indicatorPool[:a.src.Intn(3)+1]
	}
	return report, nil
}
