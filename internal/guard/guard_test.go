// internal/guard/guard_test.go
//
// Context
// -------
// Verifies the three guard behaviors that matter:
//
//   • protected path + logged out  → 303 to /login with “from” set
//   • protected path + logged in   → handler runs
//   • logout then re-navigate      → re-gated (no caching)
//
// Run: go test ./internal/guard -v

package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scanberry/harbor/internal/config"
	"github.com/scanberry/harbor/internal/session"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		requires bool
		sess     session.Session
		want     Verdict
	}{
		{"public always allowed", false, session.Session{}, Allow},
		{"protected logged in", true, session.Session{LoggedIn: true}, Allow},
		{"protected logged out", true, session.Session{}, RedirectToLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.requires, tc.sess); got != tc.want {
				t.Fatalf("Decide = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProtectRedirectsWithFrom(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore())
	table := map[string]bool{"/dashboard": true}

	h := Protect(mgr, table)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler ran for an unauthenticated protected request")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login?from=%2Fdashboard" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestProtectPassesAuthenticated(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore())

	login := httptest.NewRecorder()
	mgr.SetSession(login, httptest.NewRequest(http.MethodPost, "/login", nil),
		session.Session{LoggedIn: true, Email: "u@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}

	var ran bool
	h := Protect(mgr, map[string]bool{"/dashboard": true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true }))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if !ran || rr.Code != http.StatusOK {
		t.Fatalf("ran=%v status=%d, want handler to run with 200", ran, rr.Code)
	}

	// Logout, then navigate back: the same request must now redirect.
	mgr.ClearSession(httptest.NewRecorder(), req)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("post-logout status = %d, want 303", rr.Code)
	}
}

func TestTableHonorsScanToggle(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.ProtectedPaths = []string{"/dashboard", "/profile", "/admin"}

	table := Table(cfg)
	if table["/file-scan"] {
		t.Fatal("scan paths protected without the toggle")
	}

	cfg.Auth.ProtectScanPaths = true
	table = Table(cfg)
	for _, p := range append([]string{"/dashboard"}, ScanPaths...) {
		if !table[p] {
			t.Fatalf("%s missing from protected table", p)
		}
	}
}
