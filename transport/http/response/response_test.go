package response_test

import (
	"drivingschool/shared/constant"
	"drivingschool/shared/failure"
	"drivingschool/transport/http/response"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "res-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
	assert.JSONEq(t, `{"data":{"id":"res-1"}}`, rec.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected string
	}{
		{
			name:     "failure keeps its code",
			err:      failure.Conflict("lesson is fully booked"),
			code:     http.StatusConflict,
			expected: `{"error":"lesson is fully booked"}`,
		},
		{
			name:     "plain error is internal",
			err:      errors.New("db down"),
			code:     http.StatusInternalServerError,
			expected: `{"error":"db down"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
		})
	}
}

func TestCannedMessages(t *testing.T) {
	tests := []struct {
		name    string
		write   func(http.ResponseWriter)
		code    int
		message string
	}{
		{name: "rate limited", write: response.WithRequestLimitExceeded, code: http.StatusTooManyRequests, message: constant.ResponseErrorRequestLimitExceeded},
		{name: "shutting down", write: response.WithPreparingShutdown, code: http.StatusServiceUnavailable, message: constant.ResponseErrorPrepareShutdown},
		{name: "unhealthy", write: response.WithUnhealthy, code: http.StatusServiceUnavailable, message: constant.ResponseErrorUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			tt.write(rec)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.message+`"}`, rec.Body.String())
		})
	}
}
