// internal/wizard/wizard.go
//
// Multi-step auth wizard.
//
// Context
// -------
// Login and registration are the same machine with different entry
// guards:
//
//	StepCredentials ──(valid credentials)──▶ StepChallenge ──(code)──▶ StepDone
//	StepCredentials ──(federated sign-on)─────────────────────────────▶ StepDone
//
// A failed guard holds the current step and returns a sentinel error
// the handlers render inline.  Reaching StepDone removes the wizard
// from the registry and hands the identity to the caller, which is what
// makes “session set exactly once” structural: a second submit finds no
// wizard.
//
// Wizard state is per-attempt and never persisted.  Abandoned wizards
// (user navigated away) simply age out of the capacity-bounded
// registry with no session side effect.
package wizard

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/scanberry/harbor/internal/cache"
)

// Step is the wizard's position.
type Step int

const (
	StepCredentials Step = iota
	StepChallenge
	StepDone
)

// Mode selects the entry guard set.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

var (
	// ErrMissingFields signals an empty identifier or secret.
	ErrMissingFields = errors.New("wizard: email and password are required")
	// ErrPasswordMismatch signals a registration confirmation mismatch.
	ErrPasswordMismatch = errors.New("wizard: passwords do not match")
	// ErrWeakPassword signals a secret below the strength policy.
	ErrWeakPassword = errors.New("wizard: password does not meet the strength requirements")
	// ErrInvalidCode signals a wrong challenge code.
	ErrInvalidCode = errors.New("wizard: invalid verification code")
	// ErrWrongStep signals a submission out of order.
	ErrWrongStep = errors.New("wizard: submission does not match the current step")
	// ErrUnknownWizard signals an expired, completed, or never-started attempt.
	ErrUnknownWizard = errors.New("wizard: no active sign-in attempt")
)

// Policy is the configurable password-strength predicate: minimum
// length plus at least MinClasses of {uppercase, digit, special}.
type Policy struct {
	MinLength  int
	MinClasses int
}

// StrongEnough applies the predicate.
func (p Policy) StrongEnough(pw string) bool {
	if len(pw) < p.MinLength {
		return false
	}
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			special = true
		}
	}
	classes := 0
	for _, ok := range []bool{upper, digit, special} {
		if ok {
			classes++
		}
	}
	return classes >= p.MinClasses
}

// Wizard is one live sign-in or registration attempt.
type Wizard struct {
	ID   string
	Mode Mode
	Step Step

	Email string
	Phone string
	Name  string

	// secretHash keeps the submitted password bcrypt-hashed while the
	// attempt waits at the challenge step; the plaintext is dropped as
	// soon as SubmitCredentials returns.
	secretHash []byte
}

// Registry holds live wizards keyed by id.
type Registry struct {
	mu            sync.Mutex
	live          *cache.LRU[string, *Wizard]
	policy        Policy
	challengeCode string
}

// NewRegistry builds a registry accepting challengeCode, applying
// policy to registrations, and holding at most capacity live attempts.
func NewRegistry(policy Policy, challengeCode string, capacity int) *Registry {
	return &Registry{
		live:          cache.New[string, *Wizard](capacity),
		policy:        policy,
		challengeCode: challengeCode,
	}
}

// Start begins a fresh attempt at StepCredentials.
func (r *Registry) Start(mode Mode) *Wizard {
	w := &Wizard{ID: uuid.NewString(), Mode: mode, Step: StepCredentials}
	r.mu.Lock()
	r.live.Add(w.ID, w)
	r.mu.Unlock()
	return w
}

// Lookup returns a snapshot of the live attempt for id.  The copy is
// taken under the lock, so a concurrent submit on the same attempt
// (two tabs sharing the cookie) can never tear the observed state.
func (r *Registry) Lookup(id string) (Wizard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.live.Get(id)
	if !ok {
		return Wizard{}, false
	}
	return *w, true
}

// Abandon drops an attempt with no side effect.
func (r *Registry) Abandon(id string) {
	r.mu.Lock()
	r.live.Remove(id)
	r.mu.Unlock()
}

// SubmitCredentials runs the StepCredentials guards and, on success,
// advances to StepChallenge.  phone and confirm are ignored in login
// mode.  Any guard failure holds the step.
func (r *Registry) SubmitCredentials(id, email, phone, password, confirm string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.live.Get(id)
	if !ok {
		return ErrUnknownWizard
	}
	if w.Step != StepCredentials {
		return ErrWrongStep
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingFields
	}
	if w.Mode == ModeRegister {
		if password != confirm {
			return ErrPasswordMismatch
		}
		if !r.policy.StrongEnough(password) {
			return ErrWeakPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	w.Email = email
	w.Phone = strings.TrimSpace(phone)
	w.secretHash = hash
	w.Step = StepChallenge
	return nil
}

// SubmitChallenge compares code against the configured value.  A match
// completes the attempt: the wizard leaves the registry and is returned
// so the caller can set the session exactly once.  A mismatch holds
// StepChallenge.
func (r *Registry) SubmitChallenge(id, code string) (*Wizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.live.Get(id)
	if !ok {
		return nil, ErrUnknownWizard
	}
	if w.Step != StepChallenge {
		return nil, ErrWrongStep
	}
	if strings.TrimSpace(code) != r.challengeCode {
		return nil, ErrInvalidCode
	}

	w.Step = StepDone
	r.live.Remove(id)
	return w, nil
}

// CompleteFederated is the alternate terminal transition: straight from
// StepCredentials to StepDone with the identity the provider asserted.
func (r *Registry) CompleteFederated(id, email, name string) (*Wizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.live.Get(id)
	if !ok {
		return nil, ErrUnknownWizard
	}
	if w.Step != StepCredentials {
		return nil, ErrWrongStep
	}

	w.Email = email
	w.Name = name
	w.Step = StepDone
	r.live.Remove(id)
	return w, nil
}
