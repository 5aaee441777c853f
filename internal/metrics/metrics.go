// Package metrics holds Prometheus instruments used across the app.
// All collectors are registered with the global registry, so importing
// this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanberry_scans_total",
			Help: "Completed analyses by kind and verdict.",
		},
		[]string{"kind", "verdict"},
	)

	ScanValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanberry_scan_validation_errors_total",
			Help: "Submissions rejected before any analysis ran.",
		},
		[]string{"kind"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scanberry_active_sessions",
			Help: "Sessions currently held in the session store.",
		})

	WizardCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanberry_wizard_completions_total",
			Help: "Auth wizards reaching the done state, by mode.",
		},
		[]string{"mode"},
	)

	NavResultsOrphanedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanberry_nav_results_orphaned_total",
			Help: "Pending navigation results evicted before any result view consumed them.",
		})
)

func init() {
	prometheus.MustRegister(
		ScansTotal,
		ScanValidationErrorsTotal,
		ActiveSessions,
		WizardCompletionsTotal,
		NavResultsOrphanedTotal,
	)
}
