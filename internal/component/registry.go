// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/web builds the
// shared services once, then Mount() hands them to every component and
// lets each attach its routes to the root router.

package component

import (
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/scanberry/harbor/internal/analyzer"
	"github.com/scanberry/harbor/internal/config"
	"github.com/scanberry/harbor/internal/navresult"
	"github.com/scanberry/harbor/internal/session"
	"github.com/scanberry/harbor/internal/wizard"
)

// Deps carries the shared services components receive at boot.
type Deps struct {
	Config   *config.Config
	Sessions *session.Manager
	Nav      *navresult.Store
	Analyzer *analyzer.Analyzer
	Wizards  *wizard.Registry
}

// Component contract.
//
// Routes attaches every page the component owns to the shared router:
//
//	func (c *Component) Routes(r chi.Router) {
//		r.Get("/login", c.getLogin)
//		r.Post("/login", c.postLogin)
//	}
type Component interface {
	Name() string
	Init(Deps) error
	Routes(chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component in arbitrary order.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}

// Mount initializes every component with deps and attaches its routes.
func Mount(r chi.Router, deps Deps) error {
	for _, c := range All() {
		if err := c.Init(deps); err != nil {
			return err
		}
		c.Routes(r)
	}
	return nil
}
