// internal/session/session.go
//
// ScanBerry session service.
//
// Context
// -------
// The single source of truth for “is there a signed-in user.”  A
// Session record lives in a server-side Store keyed by an opaque token;
// the browser holds only the token in the “scanberry_session” cookie.
// The route guard, the greeting views, and the profile editor all read
// through Manager, never the store directly, so tests can inject a
// double.
//
// Failure semantics: a Manager with a nil store, a missing cookie, or
// an unknown token all degrade to “logged out.”  GetSession never
// returns an error and never panics; navigation must keep working even
// when session storage is unavailable.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	cookieName = "scanberry_session"
	cookieTTL  = 14 * 24 * time.Hour
)

// Session is the signed-in user record.  The zero value means logged
// out; a logged-out Session never carries profile fields.
type Session struct {
	LoggedIn bool
	Email    string
	Phone    string
	Name     string
}

// Manager binds a Store to the session cookie.
type Manager struct {
	store Store
}

// NewManager wraps store.  A nil store is legal and yields a manager
// that reports every request as logged out.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SetSession records s and binds it to the caller's browser.  When the
// request already carries a valid token the record is updated in place
// (profile edits keep the same token); otherwise a fresh token is
// minted.  Subsequent GetSession calls observe the update.
func (m *Manager) SetSession(w http.ResponseWriter, r *http.Request, s Session) {
	if m.store == nil {
		return
	}
	token := ""
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		if _, ok := m.store.Get(c.Value); ok {
			token = c.Value
		}
	}
	if token == "" {
		token = uuid.NewString()
	}
	m.store.Put(token, s)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
	})
}

// GetSession returns the current record or the logged-out zero value.
func (m *Manager) GetSession(r *http.Request) Session {
	if m == nil || m.store == nil {
		return Session{}
	}
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return Session{}
	}
	s, ok := m.store.Get(c.Value)
	if !ok {
		return Session{}
	}
	return s
}

// ClearSession removes the record and expires the cookie.  From the
// caller's perspective the clear is atomic: the single store delete
// drops every session field at once.
func (m *Manager) ClearSession(w http.ResponseWriter, r *http.Request) {
	if m.store != nil {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			m.store.Delete(c.Value)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Active reports how many sessions the underlying store holds.
func (m *Manager) Active() int {
	if m == nil || m.store == nil {
		return 0
	}
	return m.store.Len()
}
