package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tool dispatch metrics
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocsf_mcp_tool_calls_total",
			Help: "Total number of tool calls by tool and outcome",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ocsf_mcp_tool_call_duration_seconds",
			Help:    "Duration of tool calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	// Schema repository metrics
	SchemaLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocsf_mcp_schema_loads_total",
			Help: "Schema loads by source (cache, store, fallback)",
		},
		[]string{"source"},
	)

	// Event construction metrics
	EventsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocsf_mcp_events_generated_total",
			Help: "Total number of events generated by class",
		},
		[]string{"event_class"},
	)

	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocsf_mcp_validations_total",
			Help: "Total number of event validations by result",
		},
		[]string{"result"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocsf_mcp_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"key"},
	)
)
