package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borewell_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "borewell_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StockWithdrawalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borewell_stock_withdrawals_total",
			Help: "Godown withdrawals processed",
		},
	)

	BoresCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borewell_bores_created_total",
			Help: "Bores recorded",
		},
	)
)
