// components/auth/auth.go
//
// ScanBerry authentication component.
//
// Context
// -------
// Owns the sign-in surfaces: /login, /register, /verify (the challenge
// step), /login/sso (federated shortcut), and /logout.  The flows drive
// the wizard FSM; only a wizard that reaches its terminal state sets
// the session, and the FSM's remove-on-done makes that happen at most
// once per attempt.
//
// The “from” query parameter planted by the route guard travels through
// the forms as a hidden field so a completed sign-in returns the user
// to the page they originally asked for.
//
//------------------------------------------------------------------------------

package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scanberry/harbor/internal/component"
	"github.com/scanberry/harbor/internal/latency"
	"github.com/scanberry/harbor/internal/metrics"
	"github.com/scanberry/harbor/internal/session"
	"github.com/scanberry/harbor/internal/view"
	"github.com/scanberry/harbor/internal/wizard"
)

const wizardCookie = "scanberry_wizard"

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component encapsulates the sign-in flows.
type Component struct {
	deps  component.Deps
	delay time.Duration
}

func (c *Component) Name() string { return "auth" }

// Init captures the shared services.
func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	c.delay = deps.Config.Scan.SimulatedDelay
	return nil
}

// Routes attaches the auth pages.
func (c *Component) Routes(r chi.Router) {
	r.Get("/login", c.getLogin)
	r.Post("/login", c.postLogin)
	r.Get("/register", c.getRegister)
	r.Post("/register", c.postRegister)
	r.Get("/verify", c.getVerify)
	r.Post("/verify", c.postVerify)
	r.Post("/login/sso", c.postSSO)
	r.Get("/logout", c.getLogout)
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── credential step ─────────────────────────────*/

func (c *Component) getLogin(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "login", map[string]any{"From": from(r)})
}

func (c *Component) postLogin(w http.ResponseWriter, r *http.Request) {
	if err := latency.Wait(r.Context(), c.delay); err != nil {
		return // client gone
	}

	wiz := c.deps.Wizards.Start(wizard.ModeLogin)
	err := c.deps.Wizards.SubmitCredentials(wiz.ID,
		r.PostFormValue("email"), "", r.PostFormValue("password"), "")
	if err != nil {
		c.deps.Wizards.Abandon(wiz.ID)
		c.render(w, r, "login", map[string]any{
			"Error": userMessage(err),
			"Email": r.PostFormValue("email"),
			"From":  from(r),
		})
		return
	}

	c.setWizardCookie(w, wiz.ID)
	http.Redirect(w, r, "/verify?from="+url.QueryEscape(from(r)), http.StatusSeeOther)
}

func (c *Component) getRegister(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "register", map[string]any{"From": from(r)})
}

func (c *Component) postRegister(w http.ResponseWriter, r *http.Request) {
	if err := latency.Wait(r.Context(), c.delay); err != nil {
		return
	}

	wiz := c.deps.Wizards.Start(wizard.ModeRegister)
	err := c.deps.Wizards.SubmitCredentials(wiz.ID,
		r.PostFormValue("email"),
		r.PostFormValue("phone"),
		r.PostFormValue("password"),
		r.PostFormValue("confirmPassword"))
	if err != nil {
		c.deps.Wizards.Abandon(wiz.ID)
		c.render(w, r, "register", map[string]any{
			"Error": userMessage(err),
			"Email": r.PostFormValue("email"),
			"Phone": r.PostFormValue("phone"),
			"From":  from(r),
		})
		return
	}

	c.setWizardCookie(w, wiz.ID)
	http.Redirect(w, r, "/verify?from="+url.QueryEscape(from(r)), http.StatusSeeOther)
}

/*──────────────────────────── challenge step ──────────────────────────────*/

func (c *Component) getVerify(w http.ResponseWriter, r *http.Request) {
	wiz, ok := c.liveWizard(r)
	if !ok || wiz.Step != wizard.StepChallenge {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	c.render(w, r, "verify", map[string]any{"From": from(r)})
}

func (c *Component) postVerify(w http.ResponseWriter, r *http.Request) {
	wiz, ok := c.liveWizard(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	done, err := c.deps.Wizards.SubmitChallenge(wiz.ID, r.PostFormValue("code"))
	if err != nil {
		if errors.Is(err, wizard.ErrInvalidCode) {
			c.render(w, r, "verify", map[string]any{
				"Error": userMessage(err),
				"From":  from(r),
			})
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	c.completeSignIn(w, r, done)
}

/*──────────────────────────── federated shortcut ──────────────────────────*/

func (c *Component) postSSO(w http.ResponseWriter, r *http.Request) {
	if err := latency.Wait(r.Context(), c.delay); err != nil {
		return
	}

	wiz := c.deps.Wizards.Start(wizard.ModeLogin)
	done, err := c.deps.Wizards.CompleteFederated(wiz.ID,
		c.deps.Config.Auth.SSOEmail, c.deps.Config.Auth.SSOName)
	if err != nil {
		zap.S().Errorw("sso completion", "err", err)
		c.render(w, r, "login", map[string]any{"Error": "Sign-in failed.  Please try again."})
		return
	}

	c.completeSignIn(w, r, done)
}

/*──────────────────────────── logout ──────────────────────────────────────*/

func (c *Component) getLogout(w http.ResponseWriter, r *http.Request) {
	c.deps.Sessions.ClearSession(w, r)
	metrics.ActiveSessions.Set(float64(c.deps.Sessions.Active()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// completeSignIn is the single place a finished wizard becomes a
// session.
func (c *Component) completeSignIn(w http.ResponseWriter, r *http.Request, done *wizard.Wizard) {
	c.deps.Sessions.SetSession(w, r, session.Session{
		LoggedIn: true,
		Email:    done.Email,
		Phone:    done.Phone,
		Name:     done.Name,
	})
	c.clearWizardCookie(w)
	metrics.ActiveSessions.Set(float64(c.deps.Sessions.Active()))
	metrics.WizardCompletionsTotal.WithLabelValues(string(done.Mode)).Inc()
	zap.S().Infow("sign-in complete", "mode", done.Mode, "email", done.Email)

	http.Redirect(w, r, safeReturnPath(from(r)), http.StatusSeeOther)
}

func (c *Component) liveWizard(r *http.Request) (wizard.Wizard, bool) {
	ck, err := r.Cookie(wizardCookie)
	if err != nil || ck.Value == "" {
		return wizard.Wizard{}, false
	}
	return c.deps.Wizards.Lookup(ck.Value)
}

func (c *Component) setWizardCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Component) clearWizardCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (c *Component) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, "auth", name, data); err != nil {
		zap.S().Errorw("render", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// from extracts the post-login return path from query or form.
func from(r *http.Request) string {
	if v := r.URL.Query().Get("from"); v != "" {
		return v
	}
	return r.PostFormValue("from")
}

// safeReturnPath confines redirects to local paths.
func safeReturnPath(p string) string {
	if strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") {
		return p
	}
	return "/dashboard"
}

// userMessage maps wizard sentinels to the inline copy the forms show.
func userMessage(err error) string {
	switch {
	case errors.Is(err, wizard.ErrMissingFields):
		return "Please check your email and password."
	case errors.Is(err, wizard.ErrPasswordMismatch):
		return "Please ensure both passwords match."
	case errors.Is(err, wizard.ErrWeakPassword):
		return "Password must be at least 8 characters and mix in uppercase, digits, or symbols."
	case errors.Is(err, wizard.ErrInvalidCode):
		return "Invalid code.  Please check the verification code and try again."
	default:
		return "Something went wrong.  Please try again."
	}
}
