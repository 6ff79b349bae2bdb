// Package apiclient is the HTTP client for the IA-Technology catalog
// backend: a request pipeline that attaches the bearer token and detects
// credential expiry, plus thin typed wrappers for every endpoint group.
package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// requestsTotal counts completed round trips through the pipeline.
// Labels:
//   - method: HTTP method
//   - status: numeric HTTP status, or "network_error" when no response
//     was received
var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "Total number of API requests sent through the pipeline.",
	},
	[]string{"method", "status"},
)

// requestDuration measures round-trip latency per method.
var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_request_duration_seconds",
		Help:      "Duration of API round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// authExpiriesTotal counts 401 responses on authenticated (non-signin) calls.
var authExpiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_auth_expiries_total",
		Help:      "Total number of credential-expiry (401) responses detected.",
	},
)

// forcedLogoutsTotal counts forced-logout broadcasts actually emitted.
// Label:
//   - result: "emitted" or "suppressed" (within the duplicate window)
var forcedLogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_forced_logouts_total",
		Help:      "Forced-logout broadcast decisions, labelled by result.",
	},
	[]string{"result"},
)
