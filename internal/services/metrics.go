package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation requests",
	})

	recommendationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_latency_seconds",
		Help:    "Recommendation request latency in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
	})

	recommendationPartials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_partial_results_total",
		Help: "Recommendation requests that hit the deadline before scoring every candidate",
	})

	candidatesSurvived = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_candidates_survived",
		Help:    "Candidates remaining after hard-constraint filtering",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	feedbackSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_submissions_total",
		Help: "Feedback submissions by outcome",
	}, []string{"outcome"})
)
