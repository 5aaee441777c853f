// internal/requestinfo/middleware.go
//
// Enrich parses the User-Agent once per request and stores the result
// in the context, so any downstream code holding only *http.Request can
// still retrieve it via FromContext.
package requestinfo

import (
	"context"
	"net/http"
	"time"
)

// Enrich wraps next with metadata collection.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:        ParseUA(r.UserAgent()),
			URL:       r.URL,
			Timestamp: time.Now(),
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
