package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики пайплайна синхронизации. Экспортируются через /metrics
// (promhttp) в бинаре syncline.
var (
	// RunsTotal — количество запущенных sync runs.
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syncline_runs_total",
		Help: "Total number of customer sync runs started.",
	})

	// RunDuration — длительность sync run от старта до завершения.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "syncline_run_duration_seconds",
		Help:    "Duration of a full customer sync run.",
		Buckets: prometheus.DefBuckets,
	})

	// FetchFailures — количество runs, прерванных ошибкой fetch-запроса.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syncline_fetch_failures_total",
		Help: "Total number of runs aborted by a failed unsynced-customers query.",
	})

	// CustomersSynced — успешно доставленные customers.
	CustomersSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syncline_customers_synced_total",
		Help: "Total number of customers successfully delivered to the CRM.",
	})

	// CustomersFailed — items, завершившиеся FAILED_HANDLED, по причинам.
	CustomersFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syncline_customers_failed_total",
		Help: "Total number of customer items that terminally failed, by failure reason.",
	}, []string{"reason"})

	// CrmRetries — повторные попытки доставки в CRM.
	CrmRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syncline_crm_retries_total",
		Help: "Total number of CRM delivery retries.",
	})
)
