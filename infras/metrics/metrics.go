// Package metrics exposes the Prometheus collectors of the booking engine.
package metrics

//go:generate go run go.uber.org/mock/mockgen -source=./metrics.go -destination=./mocks/metrics_mock.go -package=mocks

import (
	"drivingschool/config"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "drivingschool"

// Booking outcomes.
const (
	BookingBooked      = "booked"
	BookingUnavailable = "unavailable"
	BookingFailed      = "failed"
)

type Metrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
	BookingAttempt(outcome string)
	QuizCompleted(quizID string, saved bool)
	ExamsRunning(delta int)
	Handler() http.Handler
}

type prometheusMetrics struct {
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	bookings        *prometheus.CounterVec
	quizzes         *prometheus.CounterVec
	examsRunning    prometheus.Gauge
}

// New registers the collectors on a dedicated registry. A disabled config
// yields a recorder that drops every observation.
func New(cfg *config.Config) Metrics {
	if !cfg.Metrics.Enable {
		log.Info().Msg("Metrics disabled")

		return NewNoop()
	}

	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_attempts_total",
		Help:      "Booking attempts by outcome",
	}, []string{"outcome"})

	quizzes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_completions_total",
		Help:      "Completed quizzes and exams by quiz and persistence outcome",
	}, []string{"quiz_id", "saved"})

	examsRunning := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "exams_running",
		Help:      "Mock exam sessions currently in progress",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "goroutines_total",
		Help:      "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, bookings, quizzes, examsRunning, goroutines)

	return &prometheusMetrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		bookings:        bookings,
		quizzes:         quizzes,
		examsRunning:    examsRunning,
	}
}

func (m *prometheusMetrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

func (m *prometheusMetrics) BookingAttempt(outcome string) {
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) QuizCompleted(quizID string, saved bool) {
	m.quizzes.WithLabelValues(quizID, strconv.FormatBool(saved)).Inc()
}

func (m *prometheusMetrics) ExamsRunning(delta int) {
	m.examsRunning.Add(float64(delta))
}

func (m *prometheusMetrics) Handler() http.Handler {
	return m.handler
}

type noopMetrics struct{}

func NewNoop() Metrics {
	return noopMetrics{}
}

func (noopMetrics) ObserveHTTPRequest(string, string, int, time.Duration) {}

func (noopMetrics) BookingAttempt(string) {}

func (noopMetrics) QuizCompleted(string, bool) {}

func (noopMetrics) ExamsRunning(int) {}

func (noopMetrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
}
