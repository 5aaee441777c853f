// components/scan/scan.go
//
// ScanBerry scanning component.
//
// Context
// -------
// Owns the five analysis tools and their result views.  Every POST
// validates first, then waits out the simulated backend latency, then
// runs the matching generator and attaches the report to the navigation
// via the one-shot result channel.  Result views consume exactly once;
// a direct load, a refresh, or a back/forward re-entry renders the
// empty state with a link back to the tool.
//
// Phone analysis is the exception twice over: its report is
// deterministic, and its number travels in a session-scoped cookie
// instead of the result channel.  The cookie is deliberately left in
// place after the result renders—recomputing from it always yields the
// same report, so re-entry shows correct data instead of the empty
// state.
//
//------------------------------------------------------------------------------

package scan

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scanberry/harbor/internal/analyzer"
	"github.com/scanberry/harbor/internal/component"
	"github.com/scanberry/harbor/internal/latency"
	"github.com/scanberry/harbor/internal/metrics"
	"github.com/scanberry/harbor/internal/view"
)

const phoneCookie = "scanberry_phone"

// Result-view names; the nav channel addresses payloads by these.
const (
	viewScanResult    = "scan-result"
	viewURLResult     = "url-result"
	viewMessageResult = "message-result"
	viewLinkResult    = "link-result"
	viewPhoneResult   = "phone-result"
)

var _ component.Component = (*Component)(nil)

// Component encapsulates the scanning flows.
type Component struct {
	deps  component.Deps
	delay time.Duration
}

func (c *Component) Name() string { return "scan" }

func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	c.delay = deps.Config.Scan.SimulatedDelay
	return nil
}

// Routes attaches the tool and result pages.
func (c *Component) Routes(r chi.Router) {
	r.Get("/file-scan", c.getFileScan)
	r.Post("/file-scan", c.postFileScan)
	r.Get("/url-scan", c.getURLScan)
	r.Post("/url-scan", c.postURLScan)
	r.Get("/message-analysis", c.getMessageAnalysis)
	r.Post("/message-analysis", c.postMessageAnalysis)
	r.Get("/link-analysis", c.getLinkAnalysis)
	r.Post("/link-analysis", c.postLinkAnalysis)
	r.Get("/phone-analysis", c.getPhoneAnalysis)
	r.Post("/phone-analysis", c.postPhoneAnalysis)

	r.Get("/scan-result", c.getScanResult)
	r.Get("/url-result", c.getURLResult)
	r.Get("/message-result", c.getMessageResult)
	r.Get("/link-result", c.getLinkResult)
	r.Get("/phone-result", c.getPhoneResult)
}

func init() { component.Register(&Component{}) }

/*──────────────────────────── file scan ───────────────────────────────────*/

func (c *Component) getFileScan(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "file-scan", nil)
}

func (c *Component) postFileScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(c.deps.Config.Scan.MaxFileSize); err != nil {
		metrics.ScanValidationErrorsTotal.WithLabelValues("file").Inc()
		c.render(w, r, "file-scan", map[string]any{"Error": "Please select a file to scan."})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		metrics.ScanValidationErrorsTotal.WithLabelValues("file").Inc()
		c.render(w, r, "file-scan", map[string]any{"Error": "Please select a file to scan."})
		return
	}
	f.Close() // name and size are all a mock scan reads

	report, err := c.deps.Analyzer.ScanFile(hdr.Filename, hdr.Size)
	if err != nil {
		c.renderValidation(w, r, "file", "file-scan", err)
		return
	}
	if latency.Wait(r.Context(), c.delay) != nil {
		return
	}

	metrics.ScansTotal.WithLabelValues("file", verdict(report.Clean, "clean", "infected")).Inc()
	c.deps.Nav.Attach(w, viewScanResult, report)
	http.Redirect(w, r, "/"+viewScanResult, http.StatusSeeOther)
}

func (c *Component) getScanResult(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if payload, ok := c.deps.Nav.Consume(w, r, viewScanResult); ok {
		data["Report"] = payload.(*analyzer.FileReport)
	}
	c.render(w, r, viewScanResult, data)
}

/*──────────────────────────── url scan ────────────────────────────────────*/

func (c *Component) getURLScan(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "url-scan", nil)
}

func (c *Component) postURLScan(w http.ResponseWriter, r *http.Request) {
	report, err := c.deps.Analyzer.ScanURL(r.PostFormValue("url"))
	if err != nil {
		c.renderValidation(w, r, "url", "url-scan", err)
		return
	}
	if latency.Wait(r.Context(), c.delay) != nil {
		return
	}

	metrics.ScansTotal.WithLabelValues("url", verdict(report.Safe, "safe", "unsafe")).Inc()
	c.deps.Nav.Attach(w, viewURLResult, report)
	http.Redirect(w, r, "/"+viewURLResult, http.StatusSeeOther)
}

func (c *Component) getURLResult(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if payload, ok := c.deps.Nav.Consume(w, r, viewURLResult); ok {
		data["Report"] = payload.(*analyzer.URLReport)
	}
	c.render(w, r, viewURLResult, data)
}

/*──────────────────────────── message analysis ────────────────────────────*/

func (c *Component) getMessageAnalysis(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "message-analysis", nil)
}

func (c *Component) postMessageAnalysis(w http.ResponseWriter, r *http.Request) {
	report, err := c.deps.Analyzer.AnalyzeMessage(r.PostFormValue("message"))
	if err != nil {
		c.renderValidation(w, r, "message", "message-analysis", err)
		return
	}
	if latency.Wait(r.Context(), c.delay) != nil {
		return
	}

	metrics.ScansTotal.WithLabelValues("message", verdict(report.Legitimate, "legitimate", "spam")).Inc()
	c.deps.Nav.Attach(w, viewMessageResult, report)
	http.Redirect(w, r, "/"+viewMessageResult, http.StatusSeeOther)
}

func (c *Component) getMessageResult(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if payload, ok := c.deps.Nav.Consume(w, r, viewMessageResult); ok {
		data["Report"] = payload.(*analyzer.MessageReport)
	}
	c.render(w, r, viewMessageResult, data)
}

/*──────────────────────────── link analysis ───────────────────────────────*/

func (c *Component) getLinkAnalysis(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "link-analysis", nil)
}

func (c *Component) postLinkAnalysis(w http.ResponseWriter, r *http.Request) {
	report, err := c.deps.Analyzer.AnalyzeLinks(r.PostFormValue("links"))
	if err != nil {
		c.renderValidation(w, r, "link", "link-analysis", err)
		return
	}
	if latency.Wait(r.Context(), c.delay) != nil {
		return
	}

	for _, row := range report.Rows {
		metrics.ScansTotal.WithLabelValues("link", verdict(row.Safe, "safe", "unsafe")).Inc()
	}
	c.deps.Nav.Attach(w, viewLinkResult, report)
	http.Redirect(w, r, "/"+viewLinkResult, http.StatusSeeOther)
}

func (c *Component) getLinkResult(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if payload, ok := c.deps.Nav.Consume(w, r, viewLinkResult); ok {
		data["Report"] = payload.(*analyzer.LinkReport)
	}
	c.render(w, r, viewLinkResult, data)
}

/*──────────────────────────── phone analysis ──────────────────────────────*/

func (c *Component) getPhoneAnalysis(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "phone-analysis", nil)
}

func (c *Component) postPhoneAnalysis(w http.ResponseWriter, r *http.Request) {
	number := r.PostFormValue("phoneNumber")
	report, err := c.deps.Analyzer.AnalyzePhone(number)
	if err != nil {
		c.renderValidation(w, r, "phone", "phone-analysis", err)
		return
	}
	if latency.Wait(r.Context(), c.delay) != nil {
		return
	}
	metrics.ScansTotal.WithLabelValues("phone", report.RiskLevel).Inc()

	// The number, not the report, travels: the result view recomputes
	// the deterministic report from it on every mount.
	http.SetCookie(w, &http.Cookie{
		Name:     phoneCookie,
		Value:    url.QueryEscape(number),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/"+viewPhoneResult, http.StatusSeeOther)
}

func (c *Component) getPhoneResult(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if ck, err := r.Cookie(phoneCookie); err == nil && ck.Value != "" {
		if number, err := url.QueryUnescape(ck.Value); err == nil {
			if report, err := c.deps.Analyzer.AnalyzePhone(number); err == nil {
				data["Report"] = report
			}
		}
	}
	c.render(w, r, viewPhoneResult, data)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func (c *Component) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, "scan", name, data); err != nil {
		zap.S().Errorw("render", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderValidation re-renders a tool form with an inline message, or
// 500s when the failure was not the user's input.
func (c *Component) renderValidation(w http.ResponseWriter, r *http.Request, kind, form string, err error) {
	if !analyzer.IsValidation(err) {
		zap.S().Errorw("analysis", "kind", kind, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.ScanValidationErrorsTotal.WithLabelValues(kind).Inc()
	c.render(w, r, form, map[string]any{"Error": err.Error()})
}

func verdict(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
