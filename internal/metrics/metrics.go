// Package metrics defines the client's Prometheus metrics. It is the single
// source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pairpro"

// RequestsTotal counts outbound API requests.
// Labels:
//   - method: HTTP method
//   - outcome: "ok", "rejected", "auth_rejected", "timeout", "network_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests issued, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestDuration measures wall time per API request.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests from send to body read.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// AuthRejectedTotal counts 401 responses that invalidated the local session.
var AuthRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejected_total",
		Help:      "Total number of credential rejections that cleared the stored session.",
	},
)

// UploadsTotal counts direct media-host uploads.
// Label:
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of direct photo uploads to the media host.",
	},
	[]string{"result"},
)
