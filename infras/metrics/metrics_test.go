package metrics_test

import (
	"drivingschool/config"
	"drivingschool/infras/metrics"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Exposition(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Enable = true

	m := metrics.New(cfg)
	m.ObserveHTTPRequest(http.MethodPost, "/v1/reservations", http.StatusCreated, 20*time.Millisecond)
	m.BookingAttempt(metrics.BookingUnavailable)
	m.QuizCompleted("road-signs", true)
	m.ExamsRunning(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `drivingschool_booking_attempts_total{outcome="unavailable"} 1`)
	assert.Contains(t, body, `drivingschool_quiz_completions_total{quiz_id="road-signs",saved="true"} 1`)
	assert.Contains(t, body, "drivingschool_exams_running 1")
	assert.Contains(t, body, `drivingschool_http_requests_total{method="POST",path="/v1/reservations",status="201"} 1`)
}

func TestMetrics_Disabled(t *testing.T) {
	m := metrics.New(&config.Config{})
	m.BookingAttempt(metrics.BookingBooked)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
