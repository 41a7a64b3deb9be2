// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	DosesMarkedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doses_marked_total",
			Help: "Dose toggles persisted by the completion tracker",
		},
	)

	RemindersSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "expiry_reminders_sent_total",
			Help: "Expiry reminder push messages delivered",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(DosesMarkedTotal)
	prometheus.MustRegister(RemindersSentTotal)
}

// Handler devuelve el endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware registra contador y latencia por request.
// Sin label de path: con IDs en la ruta la cardinalidad explota.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		HTTPRequestTotals.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
