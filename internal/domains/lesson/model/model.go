package model

import (
	"database/sql/driver"
	"drivingschool/shared/constant"
	"drivingschool/shared/enum"
	"drivingschool/shared/model"
	"errors"
	"fmt"
	"time"
)

const (
	TableName  = "lessons"
	EntityName = "lesson"

	FieldID           = "id"
	FieldLessonDate   = "lesson_date"
	FieldStartTime    = "start_time"
	FieldType         = "type"
	FieldInstructorID = "instructor_id"
	FieldStatus       = "status"
)

type Type string

const (
	TypeDriving  Type = "driving"
	TypeTheory   Type = "theory"
	TypeMockExam Type = "mock_exam"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDriving, TypeTheory, TypeMockExam:
		return true
	default:
		return false
	}
}

func (t *Type) Scan(src any) error {
	return enum.Scan(t, src)
}

func (t Type) Value() (driver.Value, error) {
	return enum.Value(t)
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s *Status) Scan(src any) error {
	return enum.Scan(s, src)
}

func (s Status) Value() (driver.Value, error) {
	return enum.Value(s)
}

var ErrInvalidClockTime = errors.New("invalid clock time")

// ClockTime is a wall-clock time of day formatted as HH:MM. Zero-padded
// values order lexically.
type ClockTime string

func ParseClockTime(value string) (ClockTime, error) {
	parsed, err := time.Parse(constant.ClockTimeFormat, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}

	return ClockTime(parsed.Format(constant.ClockTimeFormat)), nil
}

func (c ClockTime) Before(other ClockTime) bool {
	return c < other
}

// Scan accepts the time.Time lib/pq produces for TIME columns as well as text.
func (c *ClockTime) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		*c = ClockTime(value.Format(constant.ClockTimeFormat))

		return nil
	case string:
		return c.scanText(value)
	case []byte:
		return c.scanText(string(value))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidClockTime, src)
	}
}

func (c *ClockTime) scanText(value string) error {
	for _, layout := range []string{time.TimeOnly, constant.ClockTimeFormat} {
		if parsed, err := time.Parse(layout, value); err == nil {
			*c = ClockTime(parsed.Format(constant.ClockTimeFormat))

			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
}

func (c ClockTime) Value() (driver.Value, error) {
	return string(c) + ":00", nil
}

type Lesson struct {
	ID              string    `db:"id"`
	LessonDate      time.Time `db:"lesson_date"`
	StartTime       ClockTime `db:"start_time"`
	EndTime         ClockTime `db:"end_time"`
	Type            Type      `db:"type"`
	DurationMinutes int       `db:"duration_minutes"`
	Price           float64   `db:"price"`
	InstructorID    string    `db:"instructor_id"`
	VehicleID       *string   `db:"vehicle_id"`
	Status          Status    `db:"status"`

	InstructorName string  `db:"instructor_name" table:"instructors" column:"full_name"`
	VehicleBrand   *string `db:"vehicle_brand"   table:"vehicles"    column:"brand"`
	VehicleModel   *string `db:"vehicle_model"   table:"vehicles"    column:"model"`
	VehiclePlate   *string `db:"vehicle_plate"   table:"vehicles"    column:"plate_number"`
	model.Metadata
}

func (Lesson) GetJoinQuery() string {
	return "JOIN instructors ON instructors.id = lessons.instructor_id " +
		"LEFT JOIN vehicles ON vehicles.id = lessons.vehicle_id"
}

// DateKey is the calendar day the lesson belongs to.
func (l Lesson) DateKey() string {
	return l.LessonDate.Format(constant.DateOnlyFormat)
}
