// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   • Content-Security-Policy   –  self-only default policy
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//   • Permissions-Policy        –  disables powerful features by default
//
// Headers go on before next.ServeHTTP runs: the handler's first body
// write flushes the header block, so anything added afterward is lost.
// An already-present value (set by an outer middleware) is never
// overwritten, and handlers can still replace a default before writing.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		csp = "default-src 'self'; img-src 'self' data:; object-src 'none'; " +
			"base-uri 'self'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		perm  = "geolocation=(), microphone=(), camera=()"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		set := func(key, val string) {
			if w.Header().Get(key) == "" {
				w.Header().Add(key, val)
			}
		}
		set("Content-Security-Policy", csp)
		set("X-Frame-Options", xfo)
		set("X-Content-Type-Options", nosn)
		set("Referrer-Policy", refer)
		set("Permissions-Policy", perm)

		next.ServeHTTP(w, r)
	})
}
