package validator_test

import (
	"drivingschool/shared/failure"
	"drivingschool/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gearbox string

func (g gearbox) IsValid() bool {
	return g == "manual" || g == "automatic"
}

type lessonRequest struct {
	InstructorID string  `json:"instructor_id" validate:"required,uuid"`
	Email        string  `json:"email"         validate:"required,email"`
	Seats        int     `json:"seats"         validate:"gte=1,lte=4"`
	Gearbox      gearbox `json:"gearbox"       validate:"required,enum"`
	Category     string  `json:"category"      validate:"omitempty,oneof=B BE A"`
}

func validLesson() lessonRequest {
	return lessonRequest{
		InstructorID: "0b7f9a44-8f3e-4c55-9a4c-3a1f8c0f6d21",
		Email:        "learner@example.com",
		Seats:        1,
		Gearbox:      "manual",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*lessonRequest)
		message string
	}{
		{name: "valid", mutate: func(*lessonRequest) {}},
		{name: "missing instructor", mutate: func(r *lessonRequest) { r.InstructorID = "" }, message: "instructor_id is required"},
		{name: "bad uuid", mutate: func(r *lessonRequest) { r.InstructorID = "inst-1" }, message: "instructor_id must be a valid UUID"},
		{name: "bad email", mutate: func(r *lessonRequest) { r.Email = "learner" }, message: "email must be a valid email address"},
		{name: "too many seats", mutate: func(r *lessonRequest) { r.Seats = 5 }, message: "seats must be less than or equal to 4"},
		{name: "unknown gearbox", mutate: func(r *lessonRequest) { r.Gearbox = "sequential" }, message: "gearbox has an unsupported value"},
		{name: "unknown category", mutate: func(r *lessonRequest) { r.Category = "C" }, message: "category must be one of B BE A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLesson()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"instructor_id":"0b7f9a44-8f3e-4c55-9a4c-3a1f8c0f6d21","email":"learner@example.com","seats":2,"gearbox":"automatic"}`,
		},
		{
			name:    "fails validation",
			body:    `{"instructor_id":"0b7f9a44-8f3e-4c55-9a4c-3a1f8c0f6d21","email":"learner@example.com","seats":0,"gearbox":"automatic"}`,
			wantErr: true,
		},
		{name: "malformed json", body: `{"email":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req lessonRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

type photoRequest struct {
	Photo string `json:"photo" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=0.0001"`
}

func TestPhotoValidation(t *testing.T) {
	tests := []struct {
		name    string
		photo   string
		message string
	}{
		{name: "small png", photo: "data:image/png;base64,iVBORw0KGgo="},
		{name: "wrong type", photo: "data:application/pdf;base64,JVBERi0=", message: "photo must be one of image/png image/jpeg"},
		{name: "not a data url", photo: "iVBORw0KGgo=", message: "photo must be one of image/png image/jpeg"},
		{name: "too large", photo: "data:image/png;base64," + strings.Repeat("A", 200), message: "photo must not exceed 0.0001 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&photoRequest{Photo: tt.photo})
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
