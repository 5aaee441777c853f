// cmd/web/main.go
//
// ScanBerry Harbor – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback), then the layered
//     config (conf/global.yaml + SCANBERRY_* overrides).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Build the shared services: session store, one-shot navigation
//     result channel, analysis generators, and the sign-in wizard
//     registry.
//
//  4. Assemble the chi router: request enrichment, request logging,
//     security headers, optional HTTPS enforcement, the route guard,
//     the Prometheus /metrics endpoint, then every registered
//     component's routes.
//
//  5. Serve until SIGINT/SIGTERM, then drain gracefully.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scanberry/harbor/internal/analyzer"
	"github.com/scanberry/harbor/internal/component"
	"github.com/scanberry/harbor/internal/config"
	"github.com/scanberry/harbor/internal/guard"
	"github.com/scanberry/harbor/internal/logger"
	"github.com/scanberry/harbor/internal/middleware"
	"github.com/scanberry/harbor/internal/navresult"
	"github.com/scanberry/harbor/internal/requestinfo"
	"github.com/scanberry/harbor/internal/server"
	"github.com/scanberry/harbor/internal/session"
	"github.com/scanberry/harbor/internal/view"
	"github.com/scanberry/harbor/internal/wizard"

	_ "github.com/scanberry/harbor/components/account"
	_ "github.com/scanberry/harbor/components/auth"
	_ "github.com/scanberry/harbor/components/home"
	_ "github.com/scanberry/harbor/components/scan"
)

const (
	serverEnvPath = "/usr/local/etc/scanberry/global.env"

	// wizardCapacity bounds concurrent half-finished sign-ins.
	wizardCapacity = 512
)

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	//
	// ── 1.  Config + logger ─────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	view.SetRoot(cfg.Paths.Root)

	//
	// ── 2.  Shared services ─────────────────────────────────────────────
	//
	sessions := session.NewManager(session.NewMemoryStore())
	nav := navresult.NewStore(cfg.Scan.PendingResults)

	gen := analyzer.New(analyzer.NewSource())
	gen.MaxFileSize = cfg.Scan.MaxFileSize

	wizards := wizard.NewRegistry(wizard.Policy{
		MinLength:  cfg.Auth.PasswordMinLength,
		MinClasses: cfg.Auth.PasswordMinClasses,
	}, cfg.Auth.ChallengeCode, wizardCapacity)

	//
	// ── 3.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS))
	r.Use(requestinfo.Enrich)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Security)
	r.Use(guard.Protect(sessions, guard.Table(cfg)))

	r.Handle("/metrics", promhttp.Handler())

	deps := component.Deps{
		Config:   cfg,
		Sessions: sessions,
		Nav:      nav,
		Analyzer: gen,
		Wizards:  wizards,
	}
	if err := component.Mount(r, deps); err != nil {
		logOut.Fatalw("mount components", "err", err)
	}

	//
	// ── 4.  Serve until signalled ───────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.HTTP.ListenAddr, r)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := server.Run(ctx, srv); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("shutdown complete")
}
