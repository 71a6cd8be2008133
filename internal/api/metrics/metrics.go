// Package metrics defines and registers the custom Prometheus metrics of the
// admin console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts resolved login and registration attempts.
// Labels:
//   - action: "login" or "register"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of resolved authentication attempts.",
	},
	[]string{"action", "outcome"},
)

// AuthAttemptDuration measures how long an attempt takes, simulated latency included.
var AuthAttemptDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_attempt_duration_seconds",
		Help:      "Duration of authentication attempts from request to resolution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - outcome: loading, redirect_login, forbidden, fallback, redirect_default, render
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit entries that were not persisted.
// Label:
//   - reason: "queue_full" or "insert_failed"
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit entries dropped or failed.",
	},
	[]string{"reason"},
)
