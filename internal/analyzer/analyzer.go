// internal/analyzer/analyzer.go
//
// Mock analysis generators.
//
// Context
// -------
// Every “analysis” in the product is fabricated: a verdict is drawn
// from a randomness source, dressed with fixed detail tables, and
// handed to a result view.  The product still treats the outputs as
// contracts—thresholds, detail tables, and the deterministic phone
// bucketing are all pinned by tests—so every random draw flows through
// the injected Source and every tunable lives in a named constant.
//
// Input validation always runs before any randomness is drawn: a
// rejected submission must never consume a draw, or seeded test
// sequences (and user-visible behavior) would shift.
package analyzer

import (
	"errors"
	"math/rand"
	"time"
)

// Source is the randomness the generators consume.  *rand.Rand
// satisfies it; tests pin a seeded instance.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a time-seeded production Source.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ValidationError marks input rejected before analysis.  The text is
// user-facing and rendered inline by the form views.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is a user-input rejection rather
// than a system failure.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// Analyzer bundles the randomness source and clock the generators use.
type Analyzer struct {
	src Source
	now func() time.Time

	// MaxFileSize caps ScanFile input, in bytes.
	MaxFileSize int64
}

// New returns an Analyzer drawing from src with a real clock.
func New(src Source) *Analyzer {
	return &Analyzer{
		src:         src,
		now:         time.Now,
		MaxFileSize: 16 << 20,
	}
}

// WithClock overrides the timestamp source (tests).
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}
