// internal/navresult/navresult_test.go
//
// Run: go test ./internal/navresult -v

package navresult

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// submit attaches a payload and returns a request carrying the
// transition cookie, as the redirected browser would.
func submit(t *testing.T, s *Store, view string, payload any) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Attach(rr, view, payload)

	req := httptest.NewRequest(http.MethodGet, "/"+view, nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestAttachThenConsume(t *testing.T) {
	s := NewStore(8)
	req := submit(t, s, "scan-result", "report-1")

	got, ok := s.Consume(httptest.NewRecorder(), req, "scan-result")
	if !ok || got != "report-1" {
		t.Fatalf("Consume = %v,%v, want report-1,true", got, ok)
	}
}

func TestConsumeIsOneShot(t *testing.T) {
	s := NewStore(8)
	req := submit(t, s, "scan-result", "report-1")

	if _, ok := s.Consume(httptest.NewRecorder(), req, "scan-result"); !ok {
		t.Fatal("first consume failed")
	}
	// Back/forward re-entry replays the same cookie; must be absent now.
	if _, ok := s.Consume(httptest.NewRecorder(), req, "scan-result"); ok {
		t.Fatal("payload replayed on second consume")
	}
}

func TestNoCrossViewLeak(t *testing.T) {
	s := NewStore(8)
	req := submit(t, s, "scan-result", "file-report")

	if _, ok := s.Consume(httptest.NewRecorder(), req, "url-result"); ok {
		t.Fatal("file-scan payload visible to the url-result view")
	}
}

func TestDirectLoadIsAbsent(t *testing.T) {
	s := NewStore(8)
	req := httptest.NewRequest(http.MethodGet, "/scan-result", nil)

	if _, ok := s.Consume(httptest.NewRecorder(), req, "scan-result"); ok {
		t.Fatal("fresh direct load saw a payload")
	}
}

func TestConsumeExpiresCookie(t *testing.T) {
	s := NewStore(8)
	req := submit(t, s, "scan-result", "r")

	rr := httptest.NewRecorder()
	s.Consume(rr, req, "scan-result")

	var expired bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "scanberry_nav" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("transition cookie not expired on consume")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := NewStore(2)
	first := submit(t, s, "scan-result", "old")
	submit(t, s, "url-result", "mid")
	submit(t, s, "link-result", "new")

	if _, ok := s.Consume(httptest.NewRecorder(), first, "scan-result"); ok {
		t.Fatal("oldest pending payload survived capacity eviction")
	}
	if s.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", s.Pending())
	}
}
