// Package metrics defines and registers all custom Prometheus metrics for the
// FarmaPay admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farmapay"

// ── Identity metrics ──────────────────────────────────────────────────────────

// ProvisioningTotal counts provisioning attempts by outcome.
// Label:
//   - result: "ok", "invalid", "conflict", or "error"
var ProvisioningTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_total",
		Help:      "Total number of profile provisioning attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionValidationsTotal counts session guard evaluations.
// Label:
//   - result: "valid" or "invalid" (missing, malformed, expired, and unknown
//     subject all count as "invalid"; the split is deliberately not exposed)
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session validations, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts capability authorization decisions.
// Labels:
//   - decision: "allow" or "deny"
//   - capability: the requested capability name
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of capability authorization decisions.",
	},
	[]string{"decision", "capability"},
)
