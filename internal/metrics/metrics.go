package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/task-manager/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Account metrics

	RegistrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "registrations_total",
		Help:      "Registration attempts, by outcome.",
	}, []string{"outcome"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "logins_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	// Task metrics

	TaskOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "task_operations_total",
		Help:      "Task mutations, by operation.",
	}, []string{"op"})

	// Store snapshot, refreshed by the stats collector

	UsersStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "taskmanager",
		Name:      "users_stored",
		Help:      "Number of registered users.",
	})

	TasksStored = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "taskmanager",
		Name:      "tasks_stored",
		Help:      "Number of stored tasks, by state.",
	}, []string{"state"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskmanager",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskmanager",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		TaskOperationsTotal,
		UsersStored,
		TasksStored,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer exposes /metrics plus liveness and readiness probes.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
