package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeFound  = "found"
	OutcomeAbsent = "absent"
)

var (
	ProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seoinspector_probe_total",
			Help: "Total number of robots.txt and sitemap probes by outcome",
		},
		[]string{"target", "outcome"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seoinspector_stage_duration_seconds",
			Help:    "Duration of inspection stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	InspectionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seoinspector_inspection_failures_total",
			Help: "Inspections that stopped at a stage",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(ProbesTotal, StageDuration, InspectionFailures)
}
