// components/account/account.go
//
// Signed-in surfaces: dashboard, profile, and the admin stats view.
// All three sit in the default protected-path table, so the route guard
// has already vouched for the session by the time these handlers run.
//
//------------------------------------------------------------------------------

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scanberry/harbor/internal/component"
	"github.com/scanberry/harbor/internal/session"
	"github.com/scanberry/harbor/internal/view"
)

var _ component.Component = (*Component)(nil)

// Component encapsulates the account pages.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string { return "account" }

func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/dashboard", c.getDashboard)
	r.Get("/profile", c.getProfile)
	r.Post("/profile", c.postProfile)
	r.Get("/admin", c.getAdmin)
}

func init() { component.Register(&Component{}) }

/*──────────────────────────── handlers ────────────────────────────────────*/

func (c *Component) getDashboard(w http.ResponseWriter, r *http.Request) {
	s := c.deps.Sessions.GetSession(r)
	c.render(w, r, "dashboard", map[string]any{
		"Session":  s,
		"Greeting": Greeting(s),
	})
}

func (c *Component) getProfile(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "profile", map[string]any{
		"Session": c.deps.Sessions.GetSession(r),
	})
}

// postProfile updates name and phone on the live session record; email
// is the identity and stays fixed.
func (c *Component) postProfile(w http.ResponseWriter, r *http.Request) {
	s := c.deps.Sessions.GetSession(r)
	if !s.LoggedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.Name = strings.TrimSpace(r.PostFormValue("name"))
	s.Phone = strings.TrimSpace(r.PostFormValue("phone"))
	c.deps.Sessions.SetSession(w, r, s)

	c.render(w, r, "profile", map[string]any{
		"Session": c.deps.Sessions.GetSession(r),
		"Saved":   true,
	})
}

func (c *Component) getAdmin(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "admin", map[string]any{
		"Session":        c.deps.Sessions.GetSession(r),
		"ActiveSessions": c.deps.Sessions.Active(),
		"PendingResults": c.deps.Nav.Pending(),
	})
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func (c *Component) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, "account", name, data); err != nil {
		zap.S().Errorw("render", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Greeting picks the friendliest available identifier.
func Greeting(s session.Session) string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}
