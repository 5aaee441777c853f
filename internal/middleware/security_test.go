// internal/middleware/security_test.go
//
// Run: go test ./internal/middleware -v

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// The assertions go through rr.Result(), which snapshots the headers at
// the first body write exactly like a real connection does.
func TestSecurityHeadersSurviveBodyWrite(t *testing.T) {
	h := Security(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<html><body>ok</body></html>")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	res := rr.Result()
	for _, key := range []string{
		"Content-Security-Policy",
		"X-Frame-Options",
		"X-Content-Type-Options",
		"Referrer-Policy",
		"Permissions-Policy",
	} {
		if res.Header.Get(key) == "" {
			t.Errorf("%s absent on a rendered page", key)
		}
	}
	if ct := res.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, handler value must survive", ct)
	}
}

func TestSecurityKeepsExistingValue(t *testing.T) {
	inner := Security(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	outer := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		inner.ServeHTTP(w, r)
	})

	rr := httptest.NewRecorder()
	outer.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Result().Header.Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("X-Frame-Options = %q, want the outer value kept", got)
	}
}
