// internal/analyzer/analyzer_test.go
//
// Context
// -------
// All generators draw from the injected Source, so the tests script a
// fake source with exact values instead of seeding math/rand.  The fake
// also counts draws, which lets validation tests assert that rejected
// input never consumes randomness.
//
// Run: go test ./internal/analyzer -v

package analyzer

import (
	"reflect"
	"testing"
	"time"
)

// fakeSource replays scripted values and counts draws.
type fakeSource struct {
	floats []float64
	ints   []int
	draws  int
}

func (f *fakeSource) Float64() float64 {
	f.draws++
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fakeSource) Intn(int) int {
	f.draws++
	v := f.ints[0]
	f.ints = f.ints[1:]
	return v
}

func newAnalyzer(src Source) *Analyzer {
	return New(src).WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
}

/*──────────────────────────── file scan ───────────────────────────────────*/

func TestScanFileClean(t *testing.T) {
	a := newAnalyzer(&fakeSource{floats: []float64{0.9}})
	r, err := a.ScanFile("report.pdf", 1536)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if !r.Clean || len(r.Threats) != 0 {
		t.Fatalf("clean draw produced %+v", r)
	}
	if r.FileSize != "1.50 KB" {
		t.Fatalf("FileSize = %q", r.FileSize)
	}
}

func TestScanFileDirtyCarriesFixedThreats(t *testing.T) {
	a := newAnalyzer(&fakeSource{floats: []float64{0.1}})
	r, err := a.ScanFile("setup.exe", 2048)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if r.Clean {
		t.Fatal("0.1 draw must be dirty")
	}
	want := []Threat{
		{Type: "Malware", Name: "Trojan.Generic.12345", Severity: "High"},
		{Type: "PUP", Name: "Adware.BrowserModifier", Severity: "Medium"},
	}
	if !reflect.DeepEqual(r.Threats, want) {
		t.Fatalf("Threats = %+v", r.Threats)
	}
}

func TestScanFileRejectsBeforeDrawing(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		size     int64
	}{
		{"empty name", "", 10},
		{"oversize", "big.zip", 17 << 20},
		{"bad extension", "script.sh", 10},
		{"no extension", "README", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &fakeSource{}
			a := newAnalyzer(src)
			if _, err := a.ScanFile(tc.fileName, tc.size); !IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if src.draws != 0 {
				t.Fatalf("validation consumed %d draws", src.draws)
			}
		})
	}
}

/*──────────────────────────── url scan ────────────────────────────────────*/

func TestScanURLNormalizes(t *testing.T) {
	a := newAnalyzer(&fakeSource{floats: []float64{0.9}})
	r, err := a.ScanURL("example.com")
	if err != nil {
		t.Fatalf("ScanURL: %v", err)
	}
	if r.URL != "https://example.com" {
		t.Fatalf("URL = %q", r.URL)
	}
	if !r.Safe || r.Category != "Safe" || !r.Details.SSL || r.Details.Reputation != "Good" {
		t.Fatalf("safe report = %+v", r)
	}
}

func TestScanURLUnsafeDetails(t *testing.T) {
	// 0.1 → unsafe, 0.7 → Phishing, 0.2 → ssl false.
	a := newAnalyzer(&fakeSource{floats: []float64{0.1, 0.7, 0.2}})
	r, err := a.ScanURL("https://bad.example")
	if err != nil {
		t.Fatalf("ScanURL: %v", err)
	}
	if r.Safe || r.Category != "Phishing" || r.Details.SSL || r.Details.Reputation != "Poor" {
		t.Fatalf("unsafe report = %+v", r)
	}
}

func TestScanURLRejectsBeforeDrawing(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a url", "https://bad host.com"} {
		src := &fakeSource{}
		a := newAnalyzer(src)
		if _, err := a.ScanURL(raw); !IsValidation(err) {
			t.Fatalf("ScanURL(%q) err = %v, want validation error", raw, err)
		}
		if src.draws != 0 {
			t.Fatalf("ScanURL(%q) consumed %d draws", raw, src.draws)
		}
	}
}

/*──────────────────────────── message analysis ────────────────────────────*/

func TestAnalyzeMessageLegitimate(t *testing.T) {
	// 0.9 → legitimate, 0.5 → score 15.
	a := newAnalyzer(&fakeSource{floats: []float64{0.9, 0.5}})
	r, err := a.AnalyzeMessage("see you at lunch")
	if err != nil {
		t.Fatalf("AnalyzeMessage: %v", err)
	}
	if !r.Legitimate || r.SpamScore != 15 || len(r.Indicators) != 0 {
		t.Fatalf("legitimate report = %+v", r)
	}
}

func TestAnalyzeMessageSpam(t *testing.T) {
	// 0.1 → spam, 0.5 → score 80, Intn→2 → three indicators.
	a := newAnalyzer(&fakeSource{floats: []float64{0.1, 0.5}, ints: []int{2}})
	r, err := a.AnalyzeMessage("URGENT claim your prize")
	if err != nil {
		t.Fatalf("AnalyzeMessage: %v", err)
	}
	if r.Legitimate || r.SpamScore != 80 {
		t.Fatalf("spam report = %+v", r)
	}
	want := []string{
		"Suspicious keywords detected",
		"Unusual message structure",
		"Contains suspicious links",
	}
	if !reflect.DeepEqual(r.Indicators, want) {
		t.Fatalf("Indicators = %v", r.Indicators)
	}
}

func TestAnalyzeMessageRejectsBlank(t *testing.T) {
	src := &fakeSource{}
	a := newAnalyzer(src)
	if _, err := a.AnalyzeMessage("  \n "); !IsValidation(err) {
		t.Fatal("blank message accepted")
	}
	if src.draws != 0 {
		t.Fatal("blank message consumed randomness")
	}
}

/*──────────────────────────── link analysis ───────────────────────────────*/

func TestAnalyzeLinksDropsBlankLines(t *testing.T) {
	// Two rows: safe (0.9) and unsafe (0.1) with category index 3 → Scam.
	a := newAnalyzer(&fakeSource{floats: []float64{0.9, 0.1}, ints: []int{3}})
	r, err := a.AnalyzeLinks("https://a.com\n\nhttps://b.com")
	if err != nil {
		t.Fatalf("AnalyzeLinks: %v", err)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(r.Rows))
	}
	if !r.Rows[0].Safe || r.Rows[0].Category != "Safe" || r.Rows[0].Reputation != "Good" {
		t.Fatalf("row 0 = %+v", r.Rows[0])
	}
	if r.Rows[1].Safe || r.Rows[1].Category != "Scam" || r.Rows[1].Reputation != "Poor" {
		t.Fatalf("row 1 = %+v", r.Rows[1])
	}
}

func TestAnalyzeLinksRejectsBlankInput(t *testing.T) {
	for _, blob := range []string{"", "\n\n\n", "   \n  \n"} {
		src := &fakeSource{}
		a := newAnalyzer(src)
		if _, err := a.AnalyzeLinks(blob); !IsValidation(err) {
			t.Fatalf("AnalyzeLinks(%q) accepted", blob)
		}
		if src.draws != 0 {
			t.Fatalf("AnalyzeLinks(%q) consumed randomness", blob)
		}
	}
}

/*──────────────────────────── phone analysis ──────────────────────────────*/

func TestAnalyzePhoneDeterministicTiers(t *testing.T) {
	a := newAnalyzer(&fakeSource{})

	cases := []struct {
		number string
		level  string
		score  int
	}{
		{"+1 555 123 0000", "high", 85},
		{"+1 555 123 4443", "high", 85},
		{"5551239", "high", 85},
		{"+1 555 123 0001", "medium", 45},
		{"+1 555 123 0004", "medium", 45},
		{"+1 555 123 0002", "low", 12},
		{"+1 555 123 0008", "low", 12},
	}
	for _, tc := range cases {
		r, err := a.AnalyzePhone(tc.number)
		if err != nil {
			t.Fatalf("AnalyzePhone(%q): %v", tc.number, err)
		}
		if r.RiskLevel != tc.level || r.RiskScore != tc.score {
			t.Fatalf("AnalyzePhone(%q) = %s/%d, want %s/%d",
				tc.number, r.RiskLevel, r.RiskScore, tc.level, tc.score)
		}

		// Repeated call must agree exactly.
		again, _ := a.AnalyzePhone(tc.number)
		if again.Recommendation != r.Recommendation || again.RiskScore != r.RiskScore {
			t.Fatalf("AnalyzePhone(%q) not deterministic", tc.number)
		}
	}
}

func TestAnalyzePhoneTrailingNonDigit(t *testing.T) {
	a := newAnalyzer(&fakeSource{})
	// Last digit wins even when the string ends with punctuation.
	r, err := a.AnalyzePhone("+1 (555) 123-0000 ext.")
	if err != nil {
		t.Fatalf("AnalyzePhone: %v", err)
	}
	if r.RiskLevel != "high" {
		t.Fatalf("RiskLevel = %s, want high", r.RiskLevel)
	}
}

func TestAnalyzePhoneRejects(t *testing.T) {
	a := newAnalyzer(&fakeSource{})
	for _, number := range []string{"", "   ", "no-digits-here"} {
		if _, err := a.AnalyzePhone(number); !IsValidation(err) {
			t.Fatalf("AnalyzePhone(%q) accepted", number)
		}
	}
}
