package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelRoute      = "route"
	labelHTTPMethod = "http_method"
	labelStatusCode = "status_code"
)

var (
	timingMetrics metrics.Histogram = kitprometheus.NewSummaryFrom(prometheus.SummaryOpts{
		Name:       "cartridge_request_http_timing",
		Help:       "timing a request in http server",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{labelRoute, labelHTTPMethod})

	statusCodeMetrics metrics.Counter = kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Name: "cartridge_request_http_status",
		Help: "status codes returned by http server",
	}, []string{labelRoute, labelHTTPMethod, labelStatusCode})
)

func (*httpserver) monitoringTiming(start time.Time, route, httpMethod string) {
	timingMetrics.
		With(labelRoute, route, labelHTTPMethod, httpMethod).
		Observe(time.Since(start).Seconds())
}

// monitoringStatusCode код 0 означает, что обработчик не вызывал WriteHeader (200)
func (*httpserver) monitoringStatusCode(route, httpMethod string, statusCode int) {
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	statusCodeMetrics.
		With(labelRoute, route, labelHTTPMethod, httpMethod, labelStatusCode, strconv.Itoa(statusCode)).
		Add(1)
}
