package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewGatewayRequestsTotal returns a Prometheus counter vec for requests sent to the delivery API, labelled by operation
func NewGatewayRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_api_requests_total",
		Help: "Total number of requests sent to the delivery API",
	}, []string{"op"})
}

// NewGatewayFailuresTotal returns a Prometheus counter vec for failed delivery API calls, labelled by operation
func NewGatewayFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_api_failures_total",
		Help: "Total number of delivery API calls that ended in a transport error or non-2xx status",
	}, []string{"op"})
}
