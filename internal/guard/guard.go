// internal/guard/guard.go
//
// Route guard: gate protected views behind the session service.
//
// Context
// -------
// The guard is a pure decision (Decide) plus a chi middleware that acts
// on it.  The decision is re-evaluated on every request—never cached—
// because the session can change between navigations (logout, then
// back-navigate, must re-gate).  Unauthenticated requests to a
// protected path are 303-redirected to the login view with the
// originally requested path preserved in the “from” query parameter so
// the wizard can return the user after sign-in.
//
// Which paths are protected is configuration, not code: the product
// shipped one revision that gated only /dashboard, /profile, and
// /admin, and an earlier one that gated the scan tools too.  Table()
// builds either set from config.
package guard

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/scanberry/harbor/internal/config"
	"github.com/scanberry/harbor/internal/session"
)

// Verdict is the outcome of a guard decision.
type Verdict int

const (
	Allow Verdict = iota
	RedirectToLogin
)

// ScanPaths lists every scan and result view, gated only when
// auth.protect_scan_paths is set.
var ScanPaths = []string{
	"/file-scan", "/url-scan", "/message-analysis", "/link-analysis", "/phone-analysis",
	"/scan-result", "/url-result", "/message-result", "/link-result", "/phone-result",
}

// Decide is the pure policy check: a protected view renders only for a
// live session.
func Decide(requiresAuth bool, s session.Session) Verdict {
	if !requiresAuth {
		return Allow
	}
	if s.LoggedIn {
		return Allow
	}
	return RedirectToLogin
}

// Table builds the protected-path set from config.
func Table(cfg *config.Config) map[string]bool {
	t := make(map[string]bool, len(cfg.Auth.ProtectedPaths)+len(ScanPaths))
	for _, p := range cfg.Auth.ProtectedPaths {
		t[p] = true
	}
	if cfg.Auth.ProtectScanPaths {
		for _, p := range ScanPaths {
			t[p] = true
		}
	}
	return t
}

// Protect wraps next with the guard.  mgr may serve a nil store; Decide
// then sees a logged-out session and protected paths simply redirect.
func Protect(mgr *session.Manager, table map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Decide(table[r.URL.Path], mgr.GetSession(r)) == RedirectToLogin {
				zap.S().Debugw("guard redirect", "path", r.URL.Path)
				target := "/login?from=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
