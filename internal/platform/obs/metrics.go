package obs

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcome labels for the conversions counter.
const (
	OutcomeConverted   = "converted"
	OutcomeDiagnostics = "diagnostics"
	OutcomeParseError  = "parse_error"
	OutcomeBadRequest  = "bad_request"
)

// Collector bundles the Prometheus metrics of the conversion service and
// provides a ready-to-serve /metrics handler.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Conversions         *prometheus.CounterVec
	ConversionDurations prometheus.Histogram
	PlanWaypoints       prometheus.Histogram
}

// NewCollector registers the service metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightplan_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by path, method, and status code.",
	}, []string{"path", "method", "status"})
	requests, err := registerCounterVec(reg, requests, "flightplan_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flightplan_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"path"})
	durations, err = registerHistogramVec(reg, durations, "flightplan_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightplan_conversions_total",
		Help: "Total number of conversion attempts, labeled by outcome.",
	}, []string{"outcome"})
	conversions, err = registerCounterVec(reg, conversions, "flightplan_conversions_total")
	if err != nil {
		return nil, err
	}

	convDurations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightplan_conversion_duration_seconds",
		Help:    "Route-to-plan conversion latency in seconds.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
	}), "flightplan_conversion_duration_seconds")
	if err != nil {
		return nil, err
	}

	waypoints, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightplan_plan_waypoints",
		Help:    "Number of waypoints per generated plan.",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	}), "flightplan_plan_waypoints")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:            gatherer,
		HTTPRequests:        requests,
		HTTPDurations:       durations,
		Conversions:         conversions,
		ConversionDurations: convDurations,
		PlanWaypoints:       waypoints,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request.
func (c *Collector) ObserveRequest(path, method string, status int, seconds float64) {
	if c == nil {
		return
	}
	if c.HTTPRequests != nil {
		c.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	}
	if c.HTTPDurations != nil {
		c.HTTPDurations.WithLabelValues(path).Observe(seconds)
	}
}

// ObserveConversion records one conversion attempt. Waypoint counts are only
// meaningful for converted plans and are skipped for the other outcomes.
func (c *Collector) ObserveConversion(outcome string, seconds float64, waypoints int) {
	if c == nil {
		return
	}
	if c.Conversions != nil {
		c.Conversions.WithLabelValues(outcome).Inc()
	}
	if c.ConversionDurations != nil {
		c.ConversionDurations.Observe(seconds)
	}
	if outcome == OutcomeConverted && c.PlanWaypoints != nil {
		c.PlanWaypoints.Observe(float64(waypoints))
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
