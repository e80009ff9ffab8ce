package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests    *prometheus.CounterVec
	questions   *prometheus.CounterVec
	validations *prometheus.CounterVec
	stats       *prometheus.CounterVec
	score       prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sqlsnake_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		questions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sqlsnake_questions_total",
			Help: "Random question requests by outcome.",
		}, []string{"outcome"}),
		validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sqlsnake_validations_total",
			Help: "Query validations by outcome.",
		}, []string{"outcome"}),
		stats: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sqlsnake_stats_reports_total",
			Help: "Stats reports by outcome.",
		}, []string{"outcome"}),
		score: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sqlsnake_round_score",
			Help:    "Final score of reported rounds.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}
}
