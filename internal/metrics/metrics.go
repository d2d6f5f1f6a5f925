// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels shared by the counters below.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	// CommentSubmissions counts comment writes by result.
	CommentSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "comment_submissions_total",
		Help:      "Comment submissions by result.",
	}, []string{"result"})

	// ChatReplies counts chat replies by result.
	ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "chat_replies_total",
		Help:      "Chat replies by result.",
	}, []string{"result"})

	// RequestDuration observes HTTP request latency by method and status class.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "code"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
