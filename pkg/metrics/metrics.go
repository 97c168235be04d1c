package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seguimiento", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "seguimiento", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "seguimiento", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
