// Package metrics defines and registers all custom Prometheus metrics for
// the message API. It is the single source of truth for metric names, labels
// and help strings; registration happens with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "message"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer-token verifications performed by the
// authentication gate.
// Label:
//   - result: "valid" or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// AccountsCreatedTotal counts successfully created user accounts.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// MessagesCreatedTotal counts successfully stored messages.
var MessagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages created.",
	},
)
