// internal/middleware/forcehttps.go
//
// Optional HTTPS enforcement.  When enabled, plain-HTTP requests from
// anywhere but localhost are permanently redirected to the HTTPS
// origin.  Localhost stays exempt so `go run ./cmd/web` works without
// certificates.
package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ForceHTTPS returns a pass-through middleware when enabled is false.
func ForceHTTPS(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || isLocalhost(r.Host) {
				next.ServeHTTP(w, r)
				return
			}
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
		})
	}
}

func isLocalhost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
