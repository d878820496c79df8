package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultrush_operations_total",
			Help: "Total economy operations by name and outcome.",
		},
		[]string{"operation", "status"},
	)

	schedulerRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultrush_scheduler_runs_total",
			Help: "Total scheduler job runs by job name and outcome.",
		},
		[]string{"job", "status"},
	)
)

// Init registers the metrics in the default registry.
func Init() {
	prometheus.MustRegister(operationsTotal, schedulerRunsTotal)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordOperation counts one economy operation.
func RecordOperation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	operationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordSchedulerRun counts one scheduler job run.
func RecordSchedulerRun(job string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	schedulerRunsTotal.WithLabelValues(job, status).Inc()
}
