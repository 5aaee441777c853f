// internal/view/render.go
//
// Central view engine: template lookup, func-map injection, and an LRU
// of parsed *template.Template sets.
//
// Lookup: components/<comp>/templates/<name>.html under the configured
// root.  All templates in the same directory are parsed as one set so
// sub-templates ({{ template "row" . }}) work out-of-the-box.
//
// execName() chooses the best template to execute: if the set contains
// "<name>.html" (file with no define block) we run that, else we fall
// back to "<name>" (root template defined via {{ define }}).  Callers
// pass the logical name (e.g. "login").

package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/scanberry/harbor/internal/cache"
	"github.com/scanberry/harbor/internal/requestinfo"
)

// Parsed template sets; tweak capacity when perf-testing.  The LRU is
// not safe for concurrent use (Get reorders the recency list), so every
// access holds tmplMu — renders run on concurrent request goroutines.
var (
	tmplMu  sync.Mutex
	tmplLRU = cache.New[string, *template.Template](256)
)

// rootDir is set once at boot; empty means “current directory,” which
// is what the tests rely on.
var rootDir string

// SetRoot points the lookup at the directory holding components/.
func SetRoot(dir string) { rootDir = dir }

// Render executes the template set for comp/name and streams it to w.
// The request supplies the UA summary templates can reach via .UA; the
// parsed set itself carries no per-request state, so caching is safe.
func Render(w http.ResponseWriter, r *http.Request, comp, name string, data map[string]any) error {
	t, err := load(comp, name)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["UA"]; !ok {
		if info := requestinfo.FromContext(r.Context()); info != nil {
			data["UA"] = info.UA
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, execName(t, name), data)
}

// load finds and (if necessary) parses the template set.
func load(comp, name string) (*template.Template, error) {
	key := strings.Join([]string{comp, name}, "::")
	tmplMu.Lock()
	v, ok := tmplLRU.Get(key)
	tmplMu.Unlock()
	if ok {
		return v, nil
	}

	base := filepath.Join(rootDir, "components", comp, "templates", name+".html")
	if _, err := os.Stat(base); err != nil {
		return nil, err
	}

	// Parse all *.html in the same directory so sub-templates work.
	pattern := filepath.Join(filepath.Dir(base), "*.html")
	t, err := template.New(name).Funcs(template.FuncMap{"dict": dict}).ParseGlob(pattern)
	if err != nil {
		return nil, err
	}

	// Two goroutines may parse the same set concurrently; the second
	// Add simply refreshes the entry.
	tmplMu.Lock()
	tmplLRU.Add(key, t)
	tmplMu.Unlock()
	return t, nil
}

// execName picks the template name to execute.
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
