package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_provider_results_total",
			Help: "Provider lookups by provider and origin of the returned data",
		},
		[]string{"provider", "origin"},
	)

	AssistantReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_assistant_replies_total",
			Help: "Assistant replies by intent and terminal outcome",
		},
		[]string{"intent", "outcome"},
	)

	AssistantDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfarer_assistant_duration_seconds",
			Help:    "Time to produce an assistant reply",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"intent"},
	)

	ImageLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_image_lookups_total",
			Help: "Image enrichment lookups by result",
		},
		[]string{"result"},
	)
)
