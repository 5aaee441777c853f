// internal/navresult/navresult.go
//
// One-shot navigation result channel.
//
// Context
// -------
// A submission view computes a report and redirects to its result view.
// The report must travel with that single navigation and nothing else:
// a fresh direct load of the result view sees nothing, a second mount
// of the same view sees nothing, and a payload attached for one view is
// invisible to every other view.
//
// Mechanics: Attach stores {view, payload} under a random transition id
// and hands the id to the browser in the “scanberry_nav” cookie.
// Consume resolves the cookie, checks the entry was addressed to the
// mounting view, deletes it, and expires the cookie.  Everything about
// the entry is single-use.
//
// The store is capacity-bounded by the generic LRU; an entry evicted
// before any result view claimed it was orphaned (user navigated away
// mid-flight) and is counted as such.
package navresult

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/scanberry/harbor/internal/cache"
	"github.com/scanberry/harbor/internal/metrics"
)

const cookieName = "scanberry_nav"

type entry struct {
	view    string
	payload any
}

// Store holds pending one-shot payloads keyed by transition id.
type Store struct {
	mu      sync.Mutex
	pending *cache.LRU[string, entry]
}

// NewStore returns a Store bounded to capacity pending payloads.
func NewStore(capacity int) *Store {
	lru := cache.New[string, entry](capacity)
	lru.OnEvict = func(string, entry) {
		metrics.NavResultsOrphanedTotal.Inc()
	}
	return &Store{pending: lru}
}

// Attach binds payload to the navigation the caller is about to issue
// toward view, and returns the transition id (useful in tests).
func (s *Store) Attach(w http.ResponseWriter, view string, payload any) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.pending.Add(id, entry{view: view, payload: payload})
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Consume claims the payload attached to the current navigation, if it
// was addressed to view.  Missing cookie, unknown id, a payload meant
// for a different view, and a second Consume all report absent.  The
// cookie is expired either way, so re-entry after a consume or a
// mismatch renders the fallback state rather than replaying a result.
func (s *Store) Consume(w http.ResponseWriter, r *http.Request, view string) (any, bool) {
	expire := func() {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}

	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	expire()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending.Get(c.Value)
	if !ok {
		return nil, false
	}
	if e.view != view {
		// Addressed elsewhere.  Leave the entry for its rightful view;
		// this navigation still consumed its own cookie.
		return nil, false
	}
	s.pending.Remove(c.Value)
	return e.payload, true
}

// Pending reports how many payloads are waiting (admin view).
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}
