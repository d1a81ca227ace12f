// Package metrics defines and registers the custom Prometheus metrics of the
// property API. It is the single source of truth for metric names, labels and
// help strings.
//
// All collectors are registered with the default registry at package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "property"

// ── Onboarding metrics ───────────────────────────────────────────────────────

// OnboardingsTotal counts onboarding attempts.
// Label:
//   - result: "success", "replayed", "validation", "collision", "failed"
var OnboardingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboardings_total",
		Help:      "Total number of tenant onboarding attempts, by result.",
	},
	[]string{"result"},
)

// OnboardingDuration measures end-to-end onboarding latency.
var OnboardingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "onboarding_duration_seconds",
		Help:      "Duration of tenant onboarding including namespace provisioning.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	},
)

// RollbacksTotal counts compensation actions taken after a failed onboarding.
// Labels:
//   - target: "tenant_record" or "namespace"
//   - result: "ok" or "error"
var RollbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboarding_rollbacks_total",
		Help:      "Total number of onboarding compensation actions.",
	},
	[]string{"target", "result"},
)

// ── Request scoping metrics ──────────────────────────────────────────────────

// ResolutionsTotal counts request-scope resolutions.
// Label:
//   - outcome: "root", "tenant", "tenant_not_found", "tenant_suspended",
//     "malformed", "principal_inactive", "error"
var ResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scope_resolutions_total",
		Help:      "Total number of request namespace resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// LookupNamespacesScanned observes how many namespaces a cross-tenant login
// lookup queried before returning.
var LookupNamespacesScanned = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lookup_namespaces_scanned",
		Help:      "Number of tenant namespaces queried per cross-namespace lookup.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	},
)

// LoginsTotal counts login attempts.
// Labels:
//   - scope: "tenant" or "root"
//   - result: "success" or "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts.",
	},
	[]string{"scope", "result"},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditQueueDepth tracks entries waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts entries rejected because a worker queue was full
// or the dispatcher was closed.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped before persistence.",
	},
)

// AuditWriteErrorsTotal counts failed audit writes.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit entries that failed to persist.",
	},
)

// ── HTTP metrics ─────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (registered path, not raw URL), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
