// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Sales turn metrics.
var (
	SalesTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_turns_total",
			Help: "Processed sales turns by resulting intent",
		},
		[]string{"intent"},
	)

	SalesAITriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_ai_triggers_total",
			Help: "Turns that requested AI help by reason",
		},
		[]string{"reason"},
	)

	SalesActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_actions_total",
			Help: "Primary sales actions chosen per turn",
		},
		[]string{"action"},
	)

	SalesRecommendedProducts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sales_recommended_products",
			Help:    "Number of products recommended per turn",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 10},
		},
	)
)
