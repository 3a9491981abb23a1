package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_terminal_api_calls_total",
			Help: "Total backend API calls by endpoint and outcome",
		},
		[]string{"endpoint", "status"},
	)

	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solar_terminal_api_latency_seconds",
			Help:    "Backend API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	WeatherPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_terminal_weather_polls_total",
			Help: "Live weather polls by result",
		},
		[]string{"result"},
	)

	FetchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "solar_terminal_fetches_inflight",
			Help: "Dashboard data fetches currently awaiting a response",
		},
	)
)
