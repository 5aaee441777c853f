// internal/session/session_test.go
//
// Run: go test ./internal/session -v

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// roundTrip performs SetSession and returns a request carrying the
// cookie the manager just set.
func roundTrip(t *testing.T, m *Manager, s Session) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	m.SetSession(rr, httptest.NewRequest(http.MethodPost, "/login", nil), s)

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SetSession set no cookie")
	}
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestSetThenGet(t *testing.T) {
	m := NewManager(NewMemoryStore())
	req := roundTrip(t, m, Session{LoggedIn: true, Email: "u@example.com", Phone: "+15551230"})

	got := m.GetSession(req)
	if !got.LoggedIn || got.Email != "u@example.com" || got.Phone != "+15551230" {
		t.Fatalf("GetSession = %+v", got)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	m := NewManager(NewMemoryStore())
	req := roundTrip(t, m, Session{LoggedIn: true, Email: "u@example.com", Phone: "+15551230", Name: "U"})

	rr := httptest.NewRecorder()
	m.ClearSession(rr, req)

	got := m.GetSession(req) // token now dangles; must read as logged out
	if got.LoggedIn {
		t.Fatal("still logged in after ClearSession")
	}
	if got.Email != "" || got.Phone != "" || got.Name != "" {
		t.Fatalf("stale profile fields after clear: %+v", got)
	}

	// The response must expire the cookie.
	var expired bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "scanberry_session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("ClearSession did not expire the cookie")
	}
}

func TestMissingCookieIsLoggedOut(t *testing.T) {
	m := NewManager(NewMemoryStore())
	got := m.GetSession(httptest.NewRequest(http.MethodGet, "/", nil))
	if got.LoggedIn {
		t.Fatal("empty request reads as logged in")
	}
}

func TestNilStoreDegradesToLoggedOut(t *testing.T) {
	m := NewManager(nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	m.SetSession(rr, req, Session{LoggedIn: true, Email: "u@example.com"})

	if got := m.GetSession(req); got.LoggedIn {
		t.Fatal("nil store must never report logged in")
	}
	// Clearing must not panic either.
	m.ClearSession(httptest.NewRecorder(), req)
}

func TestProfileUpdateKeepsToken(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)
	req := roundTrip(t, m, Session{LoggedIn: true, Email: "u@example.com"})

	rr := httptest.NewRecorder()
	m.SetSession(rr, req, Session{LoggedIn: true, Email: "u@example.com", Name: "Updated"})

	if store.Len() != 1 {
		t.Fatalf("profile update minted a second session, store len = %d", store.Len())
	}
	if got := m.GetSession(req); got.Name != "Updated" {
		t.Fatalf("update not visible: %+v", got)
	}
}
