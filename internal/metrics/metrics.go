package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PowerAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyra_power_api_calls_total",
			Help: "Total NASA POWER API calls",
		},
		[]string{"status"},
	)

	PowerAPILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyra_power_api_latency_seconds",
			Help:    "NASA POWER API call latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	RowsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skyra_rows_ingested_total",
			Help: "Total daily rows reshaped from NASA POWER responses",
		},
	)

	ReadingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyra_readings_rejected_total",
			Help: "Readings dropped as physically implausible, by variable",
		},
		[]string{"variable"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyra_analyses_total",
			Help: "Total date analyses by outcome",
		},
		[]string{"outcome"},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyra_llm_calls_total",
			Help: "Total generative-language API calls",
		},
		[]string{"kind", "status"},
	)

	LLMLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyra_llm_latency_seconds",
			Help:    "Generative-language API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	ChatSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyra_chat_sessions",
			Help: "Chat sessions currently held in memory",
		},
	)
)
