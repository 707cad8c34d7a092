// Package metrics defines and registers all custom Prometheus metrics for the
// Tutor Sage API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutor_sage"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// TokensIssuedTotal counts access tokens handed out by POST /jwt.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued.",
	},
)

// AuthFailuresTotal counts requests rejected by the authentication gate.
// Label:
//   - reason: "missing_header", "bad_scheme", "invalid_token" or "expired"
//
// Clients always receive the same 401; the reason is only recorded here.
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// GateDecisionsTotal counts role and self-access gate outcomes.
// Labels:
//   - gate: "Admin", "Teacher", "Student" or "self"
//   - result: "allow" or "deny"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by gate and result.",
	},
	[]string{"gate", "result"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// UsersCreatedTotal counts POST /users outcomes.
// Label:
//   - result: "created" or "exists"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user create attempts, by result.",
	},
	[]string{"result"},
)

// PaymentIntentsTotal counts payment intents requested from the processor.
// Label:
//   - result: "ok" or "error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intents requested, by result.",
	},
	[]string{"result"},
)

// StoreOperationDuration measures single MongoDB operations.
// Labels:
//   - collection: e.g. "users", "classes"
//   - operation: e.g. "find", "insert", "update", "delete", "count"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of single document store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection", "operation"},
)
