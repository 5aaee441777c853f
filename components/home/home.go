// components/home/home.go
//
// Landing page and the not-found view the router falls back to.
//
//------------------------------------------------------------------------------

package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scanberry/harbor/internal/component"
	"github.com/scanberry/harbor/internal/view"
)

var _ component.Component = (*Component)(nil)

// Component owns the public landing surfaces.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string { return "home" }

func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.getLanding)
	r.NotFound(c.NotFound)
}

func init() { component.Register(&Component{}) }

func (c *Component) getLanding(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "landing", map[string]any{
		"Session": c.deps.Sessions.GetSession(r),
	})
}

// NotFound renders the dedicated unknown-route view.
func (c *Component) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	c.render(w, r, "notfound", map[string]any{"Path": r.URL.Path})
}

func (c *Component) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, "home", name, data); err != nil {
		zap.S().Errorw("render", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
