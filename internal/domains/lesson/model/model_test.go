package model_test

import (
	"drivingschool/internal/domains/lesson/model"
	"drivingschool/shared/enum"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input    string
		expected model.ClockTime
		wantErr  bool
	}{
		{input: "09:00", expected: "09:00"},
		{input: "9:05", expected: "09:05"},
		{input: "23:59", expected: "23:59"},
		{input: "24:00", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseClockTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidClockTime)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClockTime_Scan(t *testing.T) {
	var clock model.ClockTime

	require.NoError(t, clock.Scan(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, model.ClockTime("14:30"), clock)

	require.NoError(t, clock.Scan("08:15:00"))
	assert.Equal(t, model.ClockTime("08:15"), clock)

	require.NoError(t, clock.Scan([]byte("10:45")))
	assert.Equal(t, model.ClockTime("10:45"), clock)

	assert.ErrorIs(t, clock.Scan(42), model.ErrInvalidClockTime)
	assert.ErrorIs(t, clock.Scan("late"), model.ErrInvalidClockTime)
}

func TestClockTime_ValueAndOrder(t *testing.T) {
	value, err := model.ClockTime("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", value)

	assert.True(t, model.ClockTime("09:30").Before("10:00"))
	assert.False(t, model.ClockTime("18:00").Before("09:00"))
}

func TestEnums(t *testing.T) {
	var status model.Status
	require.NoError(t, status.Scan("booked"))
	assert.Equal(t, model.StatusBooked, status)
	assert.ErrorIs(t, status.Scan("archived"), enum.ErrUnknownValue)

	var lessonType model.Type
	require.NoError(t, lessonType.Scan([]byte("mock_exam")))
	assert.Equal(t, model.TypeMockExam, lessonType)

	_, err := model.Type("karting").Value()
	assert.ErrorIs(t, err, enum.ErrUnknownValue)
}

func TestLesson_DateKey(t *testing.T) {
	lesson := model.Lesson{LessonDate: time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2026-05-13", lesson.DateKey())
}
