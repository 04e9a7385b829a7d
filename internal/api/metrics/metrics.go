// Package metrics defines and registers all custom Prometheus metrics for the
// roster console API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roster"

// UserMutationsTotal counts create/update/delete attempts on the roster.
// Labels:
//   - op: "create", "update", or "delete"
//   - outcome: "success", "forbidden", or "error"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of roster mutation attempts, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// ForbiddenAttemptsTotal counts mutations rejected by the server-side role
// guard. These indicate a stale or tampered client, since the console hides
// forbidden controls.
// Labels:
//   - op: the attempted operation
//   - role: the acting role that was denied
var ForbiddenAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_attempts_total",
		Help:      "Total number of roster mutations denied by the role guard.",
	},
	[]string{"op", "role"},
)

// RosterFetchesTotal counts successful full-roster reads.
var RosterFetchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetches_total",
		Help:      "Total number of successful full roster fetches.",
	},
)

// LoginsTotal counts sign-in attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of operator sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)
