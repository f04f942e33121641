package failure_test

import (
	"drivingschool/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("lesson_id is required")), code: http.StatusBadRequest, message: "lesson_id is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid month"), code: http.StatusBadRequest, message: "invalid month"},
		{name: "unauthorized", err: failure.Unauthorized("token revoked"), code: http.StatusUnauthorized, message: "token revoked"},
		{name: "forbidden", err: failure.Forbidden("user account is deactivated"), code: http.StatusForbidden, message: "user account is deactivated"},
		{name: "forbidden error", err: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
		{name: "not found", err: failure.NotFound("lesson"), code: http.StatusNotFound, message: "lesson"},
		{name: "conflict", err: failure.Conflict("lesson is fully booked"), code: http.StatusConflict, message: "lesson is fully booked"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("photo storage is not configured"), code: http.StatusNotImplemented, message: "photo storage is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, failure.HasCode(tt.err, tt.code))
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("book lesson: %w", failure.Conflict("already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.True(t, failure.HasCode(wrapped, http.StatusConflict))
	assert.False(t, failure.HasCode(wrapped, http.StatusNotFound))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.False(t, failure.HasCode(errors.New("plain"), http.StatusInternalServerError))
}
