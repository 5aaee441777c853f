// internal/config/model.go
//
// Typed configuration model for ScanBerry Harbor.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                        – dotenv values,
//   • optional `conf/global.yaml`                 – primary static file,
//   • `SCANBERRY_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// a field is out of range.  Every field has a working default, so the
// binary boots with no config file at all.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Log section
//

// Log controls the zap logger.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

//
// Auth section
//

// Auth configures the route guard and the sign-in wizard.
//
// ProtectedPaths is the route-protection table: requests to these paths
// are gated on a live session.  ProtectScanPaths extends the table to
// every scan and result path, matching the product's earlier behavior
// where the tools themselves required sign-in.
type Auth struct {
	ProtectedPaths   []string `koanf:"protected_paths"`
	ProtectScanPaths bool     `koanf:"protect_scan_paths"`

	// ChallengeCode is the verification code the wizard accepts.
	ChallengeCode string `koanf:"challenge_code" validate:"required,numeric"`

	// Password policy: minimum length plus how many character classes
	// (uppercase, digit, special) must be present.
	PasswordMinLength  int `koanf:"password_min_length"  validate:"min=1"`
	PasswordMinClasses int `koanf:"password_min_classes" validate:"min=0,max=3"`

	// Federated sign-on placeholder identity.
	SSOEmail string `koanf:"sso_email" validate:"required,email"`
	SSOName  string `koanf:"sso_name"  validate:"required"`
}

//
// Scan section
//

// Scan tunes the analysis flows.
type Scan struct {
	// SimulatedDelay models backend latency on every submission.  It is
	// honored through the request context, so a client that disconnects
	// cancels the wait.
	SimulatedDelay time.Duration `koanf:"simulated_delay"`

	// MaxFileSize caps uploads on /file-scan, in bytes.
	MaxFileSize int64 `koanf:"max_file_size" validate:"min=1"`

	// PendingResults bounds the navigation-result store; overflow
	// evicts the oldest pending payload.
	PendingResults int `koanf:"pending_results" validate:"min=1"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers Root (repo root or SCANBERRY_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Log   Log   `koanf:"log"`
	Auth  Auth  `koanf:"auth"`
	Scan  Scan  `koanf:"scan"`
	Paths Paths `koanf:"-"`
}

// applyDefaults fills every zero field so env-only boots work.
func (c *Config) applyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if len(c.Auth.ProtectedPaths) == 0 {
		c.Auth.ProtectedPaths = []string{"/dashboard", "/profile", "/admin"}
	}
	if c.Auth.ChallengeCode == "" {
		c.Auth.ChallengeCode = "739214"
	}
	if c.Auth.PasswordMinLength == 0 {
		c.Auth.PasswordMinLength = 8
	}
	if c.Auth.PasswordMinClasses == 0 {
		c.Auth.PasswordMinClasses = 2
	}
	if c.Auth.SSOEmail == "" {
		c.Auth.SSOEmail = "sso.user@scanberry.example"
	}
	if c.Auth.SSOName == "" {
		c.Auth.SSOName = "ScanBerry SSO User"
	}
	if c.Scan.SimulatedDelay == 0 {
		c.Scan.SimulatedDelay = 1500 * time.Millisecond
	}
	if c.Scan.MaxFileSize == 0 {
		c.Scan.MaxFileSize = 16 << 20 // 16 MiB, the product's upload cap
	}
	if c.Scan.PendingResults == 0 {
		c.Scan.PendingResults = 1024
	}
}
